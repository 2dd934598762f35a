package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/go-dashboard/internal/auth"
	"github.com/diewo77/go-dashboard/internal/httpx"
	"github.com/diewo77/go-dashboard/internal/models"
)

// AuthHandler implements the credentials flow: look up the user by email,
// compare the bcrypt hash and issue a signed session cookie.
type AuthHandler struct {
	DB       *gorm.DB
	Sessions *auth.Sessions
	Log      zerolog.Logger
}

func NewAuthHandler(db *gorm.DB, sessions *auth.Sessions, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{DB: db, Sessions: sessions, Log: log}
}

// LoginForm: GET /login — the sign-in page. Browser redirects from the
// auth guard and from Logout land here, so it must answer GET: it returns
// the shape of the credentials form to post back.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"action": "/login",
		"method": http.MethodPost,
		"fields": []string{"email", "password"},
	})
}

// Login: POST /login — form-encoded credentials.
// Failures are deliberately indistinguishable between unknown email and
// wrong password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || len(password) < 6 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_credentials_format", nil)
		return
	}

	var user models.User
	if err := h.DB.WithContext(r.Context()).Where("email = ?", email).First(&user).Error; err != nil {
		h.Log.Info().Str("email", email).Msg("login failed: user not found")
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		h.Log.Info().Str("email", email).Msg("login failed: password mismatch")
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}

	h.Sessions.Create(w, user.ID)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"id": user.ID, "name": user.Name, "email": user.Email})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout: POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/diewo77/go-dashboard/internal/auth"
	"github.com/diewo77/go-dashboard/internal/models"
)

func TestLoginFormDescribesCredentialsEndpoint(t *testing.T) {
	conn := setupHandlerTestDB(t)
	h := NewAuthHandler(conn, auth.NewSessions("test-secret"), zerolog.Nop())

	w := httptest.NewRecorder()
	h.LoginForm(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var page struct {
		Action string   `json:"action"`
		Method string   `json:"method"`
		Fields []string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Action != "/login" || page.Method != http.MethodPost {
		t.Fatalf("unexpected form target: %+v", page)
	}
	if len(page.Fields) != 2 {
		t.Fatalf("expected email and password fields, got %v", page.Fields)
	}
}

func TestLoginIssuesSessionCookie(t *testing.T) {
	conn := setupHandlerTestDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{Name: "User", Email: "user@nextmail.com", Password: string(hash)}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	sessions := auth.NewSessions("test-secret")
	h := NewAuthHandler(conn, sessions, zerolog.Nop())

	form := url.Values{}
	form.Set("email", "user@nextmail.com")
	form.Set("password", "123456")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d body=%s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	verify := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		verify.AddCookie(c)
	}
	uid, ok := sessions.Parse(verify)
	if !ok || uid != user.ID {
		t.Fatalf("session should carry user id %s, got %q ok=%v", user.ID, uid, ok)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	conn := setupHandlerTestDB(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	user := models.User{Name: "User", Email: "user@nextmail.com", Password: string(hash)}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	h := NewAuthHandler(conn, auth.NewSessions("test-secret"), zerolog.Nop())

	form := url.Values{}
	form.Set("email", "user@nextmail.com")
	form.Set("password", "wrongpass")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestLoginRejectsUnknownEmailIdentically(t *testing.T) {
	conn := setupHandlerTestDB(t)
	h := NewAuthHandler(conn, auth.NewSessions("test-secret"), zerolog.Nop())

	form := url.Values{}
	form.Set("email", "ghost@nextmail.com")
	form.Set("password", "123456")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

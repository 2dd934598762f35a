package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-dashboard/internal/db"
	"github.com/diewo77/go-dashboard/internal/httpx"
)

// AdminHandler exposes one-shot administrative operations.
type AdminHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewAdminHandler(conn *gorm.DB, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{DB: conn, Log: log}
}

// Seed: POST /admin/seed — populate fixture data. Idempotent.
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := db.Seed(h.DB); err != nil {
		h.Log.Error().Err(err).Msg("seeding failed")
		httpx.JSONError(w, http.StatusInternalServerError, "seed_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Database seeded successfully"})
}

// Health: GET /healthz
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "database_unreachable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

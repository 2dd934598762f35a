package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-dashboard/internal/httpx"
	"github.com/diewo77/go-dashboard/internal/services"
)

// DashboardHandler serves the overview: summary cards, revenue chart data
// and the latest invoices.
type DashboardHandler struct {
	Dashboard *services.DashboardService
	Log       zerolog.Logger
}

func NewDashboardHandler(dash *services.DashboardService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{Dashboard: dash, Log: log}
}

// Overview: GET /dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Dashboard.FetchCardData(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_card_data", nil)
		return
	}
	revenue, err := h.Dashboard.FetchRevenue(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_revenue", nil)
		return
	}
	latest, err := h.Dashboard.FetchLatest(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_latest_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"cards":           cards,
		"revenue":         revenue,
		"latest_invoices": latest,
	})
}

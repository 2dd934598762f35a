package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-dashboard/internal/httpx"
	"github.com/diewo77/go-dashboard/internal/services"
)

// CustomerHandler serves the read-only customer views.
type CustomerHandler struct {
	Customers *services.CustomerService
	Log       zerolog.Logger
}

func NewCustomerHandler(customers *services.CustomerService, log zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{Customers: customers, Log: log}
}

// List: GET /dashboard/customers?q= — the customers table with aggregates.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	rows, err := h.Customers.FetchFiltered(r.Context(), query)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	if rows == nil {
		rows = []services.CustomerRow{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"customers": rows})
}

// Fields: GET /dashboard/customers/fields — id/name pairs for selects.
func (h *CustomerHandler) Fields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.Customers.FetchAll(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	if fields == nil {
		fields = []services.CustomerField{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"customers": fields})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-dashboard/internal/cache"
	"github.com/diewo77/go-dashboard/internal/httpx"
	"github.com/diewo77/go-dashboard/internal/metrics"
	"github.com/diewo77/go-dashboard/internal/services"
	"github.com/diewo77/go-dashboard/internal/validation"
)

// InvoiceHandler serves the invoice listing and the create/update/delete
// pipeline. Mutations accept JSON or form bodies; successful form posts
// redirect to the listing view.
type InvoiceHandler struct {
	Invoices  *services.InvoiceService
	Dashboard *services.DashboardService
	Cache     cache.ViewCache
	Metrics   *metrics.Metrics
	Log       zerolog.Logger
}

func NewInvoiceHandler(inv *services.InvoiceService, dash *services.DashboardService, viewCache cache.ViewCache, m *metrics.Metrics, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{Invoices: inv, Dashboard: dash, Cache: viewCache, Metrics: m, Log: log}
}

type invoiceListPayload struct {
	Invoices   []services.InvoiceRow `json:"invoices"`
	TotalPages int                   `json:"total_pages"`
	Page       int                   `json:"page"`
	Query      string                `json:"query"`
}

// List: GET /dashboard/invoices?q=&page=
// Responses are memoized in the view cache under the full request URI;
// mutations invalidate the whole listing prefix.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()
	if payload, ok := h.Cache.Get(r.Context(), key); ok {
		h.Metrics.CacheHits.WithLabelValues("hit").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}
	h.Metrics.CacheHits.WithLabelValues("miss").Inc()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	rows, err := h.Dashboard.FetchFiltered(r.Context(), query, page)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	pages, err := h.Dashboard.FetchPages(r.Context(), query)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	if rows == nil {
		rows = []services.InvoiceRow{}
	}
	body, err := json.Marshal(invoiceListPayload{Invoices: rows, TotalPages: pages, Page: page, Query: query})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "encode_error", nil)
		return
	}
	h.Cache.Set(r.Context(), key, body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Get: GET /dashboard/invoices/get?id= — the edit-form projection.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	form, err := h.Dashboard.FetchByID(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

// Create: POST /dashboard/invoices — JSON or form.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := invoiceFields(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	in, violations := validation.ValidateInvoice(fields)
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "Missing Fields. Failed to Create Invoice.", violations)
		return
	}
	inv, err := h.Invoices.Create(r.Context(), in)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	if httpx.WantsJSON(r) {
		w.Header().Set("Location", services.InvoiceListingPath)
		httpx.JSON(w, http.StatusCreated, inv)
		return
	}
	http.Redirect(w, r, services.InvoiceListingPath, http.StatusSeeOther)
}

// Update: POST /dashboard/invoices/update?id= — JSON or form.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	fields, err := invoiceFields(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	in, violations := validation.ValidateInvoice(fields)
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "Missing Fields. Failed to Update Invoice.", violations)
		return
	}
	if err := h.Invoices.Update(r.Context(), id, in); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	if httpx.WantsJSON(r) {
		w.Header().Set("Location", services.InvoiceListingPath)
		httpx.JSON(w, http.StatusOK, map[string]string{"id": id})
		return
	}
	http.Redirect(w, r, services.InvoiceListingPath, http.StatusSeeOther)
}

// Delete: POST /dashboard/invoices/delete?id=
// Idempotent; deleting an unknown id still succeeds. No navigation — the
// caller is already on the listing.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Invoices.Delete(r.Context(), id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"id": id})
}

// invoiceFields extracts the raw string form of customerId/amount/status
// from either a JSON or a form body; validation handles everything else.
func invoiceFields(r *http.Request) (map[string]string, error) {
	fields := map[string]string{}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		raw := map[string]json.RawMessage{}
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		for _, key := range []string{"customerId", "amount", "status"} {
			msg, ok := raw[key]
			if !ok {
				continue
			}
			var str string
			if err := json.Unmarshal(msg, &str); err == nil {
				fields[key] = str
				continue
			}
			// numeric amounts arrive unquoted
			fields[key] = strings.Trim(string(msg), `"`)
		}
		return fields, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	fields["customerId"] = r.Form.Get("customerId")
	fields["amount"] = r.Form.Get("amount")
	fields["status"] = r.Form.Get("status")
	return fields, nil
}

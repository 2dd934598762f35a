package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/go-dashboard/internal/validation"
)

func TestJSONErrorCarriesFieldViolations(t *testing.T) {
	v := validation.Violations{}
	v.Add("amount", "Please enter an amount greater than $0.")
	v.Add("status", "Please select an invoice status.")

	w := httptest.NewRecorder()
	JSONError(w, http.StatusBadRequest, "Missing Fields. Failed to Create Invoice.", v)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Missing Fields. Failed to Create Invoice." {
		t.Fatalf("unexpected error message %q", resp.Error)
	}
	if len(resp.Fields["amount"]) != 1 || len(resp.Fields["status"]) != 1 {
		t.Fatalf("expected one message per field, got %#v", resp.Fields)
	}
}

func TestJSONErrorOmitsFieldsWhenNil(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusUnauthorized, "unauthorized", nil)

	if strings.Contains(w.Body.String(), "fields") {
		t.Fatalf("fields key must be omitted when there are no violations: %s", w.Body.String())
	}
}

package httpx

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/go-dashboard/internal/validation"
)

// ErrorResponse is the uniform error body. Fields carries the per-field
// validation messages when the failure came from input validation.
type ErrorResponse struct {
	Error  string                `json:"error"`
	Fields validation.Violations `json:"fields,omitempty"`
}

// JSON writes payload as a JSON response with the given status. The body is
// marshaled before any header goes out so an encoding failure can still be
// reported as a 500 instead of a truncated document.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes the uniform error body. fields may be nil.
func JSONError(w http.ResponseWriter, status int, msg string, fields validation.Violations) {
	JSON(w, status, ErrorResponse{Error: msg, Fields: fields})
}

// WantsJSON reports whether the client asked for JSON over HTML.
func WantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

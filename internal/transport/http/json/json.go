package json

import (
	"encoding/json"
	"net/http"

	dErrors "civiclink/pkg/domain-errors"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// best-effort fallback; don't override status for the caller
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// ErrorEnvelope is the wire shape for all error responses.
type ErrorEnvelope struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError translates a domain error into the JSON error envelope with
// the appropriate status code. Unknown errors become internal_error so
// upstream detail never leaks to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	msg := err.Error()
	if code == dErrors.CodeInternal {
		msg = "internal error"
	}
	WriteJSON(w, StatusFor(code), ErrorEnvelope{
		Error:       string(code),
		Description: msg,
	})
}

// StatusFor maps domain error codes to HTTP status codes.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	case dErrors.CodeUpstreamUnavailable, dErrors.CodeUpstreamTimeout:
		return http.StatusServiceUnavailable
	case dErrors.CodeGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

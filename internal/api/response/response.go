// Package response holds the JSON envelope helpers shared by every API
// handler: one success shape, one error shape.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope returned by every failing endpoint.
// Details carries optional context (usually the underlying error text).
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes data as a JSON body with the given status code. A nil
// data writes the status line only, which is what 204 responses want.
// Encoding failures are logged, not surfaced: the status line is already out.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError writes an ErrorResponse with the given status code. The
// message is the stable, user-facing part; details may be an error string or
// nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "invalid cutoff date", err.Error())
//	response.RespondError(w, http.StatusNotFound, apperrors.ErrGoalNotFound.Error(), "")
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

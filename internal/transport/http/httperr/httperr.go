package httperr

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ceibacafe/ordering/internal/service/errs"
)

// errorResponse is the error body every endpoint returns.
type errorResponse struct {
	Message string                 `json:"message"`
	Errors  []errs.ValidationError `json:"errors,omitempty"`
}

// Write maps a service error onto the HTTP taxonomy: validation failures
// become 400 with field detail, missing references 404, everything else a
// generic 500 so storage details never leak.
func Write(w http.ResponseWriter, err error) {
	if ve, ok := errs.AsValidation(err); ok {
		WriteJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Invalid request data",
			Errors:  []errs.ValidationError{ve},
		})
		return
	}

	if errs.IsNotFound(err) {
		WriteJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
		return
	}

	slog.Error("request failed", "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}

// WriteMessage writes a bare {"message": ...} body.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Message: message})
}

// WriteJSON writes any payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

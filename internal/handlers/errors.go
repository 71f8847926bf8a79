package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/trackops/itam/internal/service"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose
// internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional
// "fields" for field-level details.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// writeServiceError maps the service error taxonomy to HTTP statuses.
// Anything unrecognized is a persistence or programming fault and becomes a
// logged 500 with a generic body.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validation   *service.ValidationError
		conflict     *service.ConflictError
		notFound     *service.NotFoundError
		invalidState *service.InvalidStateError
		permission   *service.PermissionError
	)
	switch {
	case errors.As(err, &validation):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &conflict):
		JSONError(w, err.Error(), http.StatusConflict)
	case errors.As(err, &notFound):
		JSONError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &invalidState):
		JSONError(w, err.Error(), http.StatusConflict)
	case errors.As(err, &permission):
		JSONError(w, err.Error(), http.StatusForbidden)
	default:
		slog.Error("request failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

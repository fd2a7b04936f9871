package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"readnest/internal/service"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondServiceError maps a service error to an HTTP status. Internal
// failures are logged server-side and reported without detail.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSchemaNotReady):
		log.Printf("Schema not ready: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, service.ErrNotConfigured):
		log.Printf("Missing configuration: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("Request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

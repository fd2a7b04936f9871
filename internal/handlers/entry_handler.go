package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"readnest/internal/service"
)

// EntryHandler handles reading entry routes
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new reading entry handler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// CreateEntry records a reading entry for a child
// POST /v1/children/{id}/entries
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	childID := r.PathValue("id")

	var input service.RecordReadingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entryID, err := h.entryService.RecordReading(r.Context(), childID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": entryID})
}

// ListEntries returns a child's recent reading entries
// GET /v1/children/{id}/entries?limit=
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	childID := r.PathValue("id")
	limit := parseIntParam(r, "limit", 100)

	entries, err := h.entryService.ListReadings(r.Context(), childID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// DeleteEntry soft-deletes a reading entry (admin only)
// DELETE /v1/entries/{id}
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")

	alreadyDeleted, err := h.entryService.SoftDeleteReading(r.Context(), entryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if alreadyDeleted {
		respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "already_deleted": true})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// parseIntParam reads an integer query parameter with a default
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

package handlers

import (
	"encoding/json"
	"net/http"

	"readnest/internal/service"
)

// HomeworkHandler handles homework routes
type HomeworkHandler struct {
	homeworkService *service.HomeworkService
	feedbackService *service.FeedbackService
}

// NewHomeworkHandler creates a new homework handler
func NewHomeworkHandler(homeworkService *service.HomeworkService, feedbackService *service.FeedbackService) *HomeworkHandler {
	return &HomeworkHandler{
		homeworkService: homeworkService,
		feedbackService: feedbackService,
	}
}

// Submit stores a homework entry
// POST /v1/homework/submit
func (h *HomeworkHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input service.SubmitHomeworkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entryID, err := h.homeworkService.Submit(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": entryID})
}

// List returns recent homework entries
// GET /v1/homework/list?limit=
func (h *HomeworkHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 100)

	entries, err := h.homeworkService.List(r.Context(), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// Delete soft-deletes a homework entry (admin only)
// DELETE /v1/homework/{id}
func (h *HomeworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")

	alreadyDeleted, err := h.homeworkService.SoftDelete(r.Context(), entryID)
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

// Analyze asks the AI endpoint for encouragement about a submission
// POST /v1/homework/analyze
func (h *HomeworkHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var input service.AnalyzeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	feedback, err := h.feedbackService.Analyze(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "feedback": feedback})
}

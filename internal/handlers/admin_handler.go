package handlers

import (
	"encoding/json"
	"net/http"

	"readnest/internal/database"
	"readnest/internal/repository"
	"readnest/internal/service"
)

// AdminHandler handles health, schema inspection and parent/admin actions
type AdminHandler struct {
	db          *database.DB
	goalService *service.GoalService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *database.DB, goalService *service.GoalService) *AdminHandler {
	return &AdminHandler{db: db, goalService: goalService}
}

// Health reports liveness
// GET /health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DebugSchema lists the live columns of every managed table (admin only)
// GET /debug/schema
func (h *AdminHandler) DebugSchema(w http.ResponseWriter, r *http.Request) {
	columns := make(map[string][]string, len(repository.ManagedTables))
	for _, t := range repository.ManagedTables {
		cols := h.db.LiveColumns(t.Name)
		if cols == nil {
			cols = []string{}
		}
		columns[t.Name] = cols
	}
	respondJSON(w, http.StatusOK, columns)
}

// Migrate reconciles every managed table and reports the outcome per
// table (admin only)
// POST /admin/migrate
func (h *AdminHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	results := make(map[string]database.SchemaStatus, len(repository.ManagedTables))
	for _, t := range repository.ManagedTables {
		status, err := h.db.EnsureSchema(t)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		results[t.Name] = status
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "tables": results})
}

// CreateGoal stores a goal for a child (admin only)
// POST /v1/children/{id}/goals
func (h *AdminHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	childID := r.PathValue("id")

	var input service.CreateGoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	goalID, err := h.goalService.CreateGoal(r.Context(), childID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": goalID})
}

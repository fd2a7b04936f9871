package handlers

import (
	"net/http"

	"readnest/internal/service"
)

// StatsHandler handles aggregate read routes
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// DailyStats returns the child's day-bucketed totals with goal progress
// GET /v1/children/{id}/daily-stats?days=
func (h *StatsHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	childID := r.PathValue("id")
	days := parseIntParam(r, "days", service.DefaultWindowDays)

	stats, err := h.statsService.DailyStats(r.Context(), childID, days)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Leaderboard ranks children by pages read in a month
// GET /v1/leaderboard?month=YYYY-MM
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	board, err := h.statsService.Leaderboard(r.Context(), month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

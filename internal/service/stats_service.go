package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"readnest/internal/cache"
	"readnest/internal/database"
	"readnest/internal/models"
	"readnest/internal/repository"
	"readnest/internal/validation"
)

// DefaultWindowDays is the trailing window used when the caller does not
// ask for a specific one. The invalidation path targets this window.
const DefaultWindowDays = 30

// maxWindowDays caps caller-supplied windows
const maxWindowDays = 90

// statsCacheKey builds the cache key for one child's aggregate
func statsCacheKey(childID string, windowDays int) string {
	return fmt.Sprintf("stats:%s:%dd", childID, windowDays)
}

// invalidateStats eagerly drops the child's cached default-window
// aggregate. Called on every write that can change it; failures are
// swallowed because a stale value still expires by TTL.
func invalidateStats(ctx context.Context, c cache.Cache, childID string) {
	logCacheErr("delete", c.Delete(ctx, statsCacheKey(childID, DefaultWindowDays)))
}

// StatsService computes day-bucketed progress aggregates joined against
// time-bounded goals, serving them from cache between writes
type StatsService struct {
	db          *database.DB
	readingRepo *repository.ReadingRepository
	goalRepo    *repository.GoalRepository
	childRepo   *repository.ChildRepository
	cache       cache.Cache
	cacheTTL    time.Duration
}

// NewStatsService creates a new stats service
func NewStatsService(db *database.DB, readingRepo *repository.ReadingRepository, goalRepo *repository.GoalRepository, childRepo *repository.ChildRepository, c cache.Cache, cacheTTL time.Duration) *StatsService {
	return &StatsService{
		db:          db,
		readingRepo: readingRepo,
		goalRepo:    goalRepo,
		childRepo:   childRepo,
		cache:       c,
		cacheTTL:    cacheTTL,
	}
}

// DailyStats returns the child's activity totals for their most recent
// windowDays active dates, ascending by date, each joined against the
// goal applicable on that date. A cached result is returned verbatim
// until invalidated or expired.
func (s *StatsService) DailyStats(ctx context.Context, childID string, windowDays int) ([]models.DailyStat, error) {
	if err := validation.ValidateChildID(childID); err != nil {
		return nil, validationErr(err)
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if windowDays > maxWindowDays {
		windowDays = maxWindowDays
	}

	key := statsCacheKey(childID, windowDays)
	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		logCacheErr("get", err)
	} else if ok {
		var stats []models.DailyStat
		if err := json.Unmarshal(data, &stats); err == nil {
			return stats, nil
		}
		// A corrupt cache entry is treated as a miss
		logCacheErr("decode", err)
	}

	if err := ensureReady(s.db, repository.ReadingEntriesTable, repository.GoalsTable); err != nil {
		return nil, err
	}

	stats, err := s.readingRepo.DailyTotals(childID, windowDays)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []models.DailyStat{}
	}

	// Each date resolves its goal independently: goals can start or end
	// inside the window
	for i := range stats {
		goal, err := s.goalRepo.ResolveForDate(childID, stats[i].Date)
		if err != nil {
			return nil, err
		}
		if goal == nil {
			continue
		}
		unit := goal.Unit
		target := goal.TargetValue
		stats[i].Unit = &unit
		stats[i].Goal = &target

		switch unit {
		case models.UnitPages:
			stats[i].Met = stats[i].Pages >= int64(target)
		case models.UnitMinutes:
			stats[i].Met = stats[i].Minutes >= int64(target)
		}
	}

	if data, err := json.Marshal(stats); err == nil {
		logCacheErr("set", s.cache.Set(ctx, key, data, s.cacheTTL))
	}
	return stats, nil
}

// Leaderboard ranks children by total pages read in the calendar month,
// name ascending on ties
func (s *StatsService) Leaderboard(ctx context.Context, month string) ([]models.LeaderboardRow, error) {
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	if err := validation.ValidateMonth(month); err != nil {
		return nil, validationErr(err)
	}

	start := month + "-01"
	monthStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, validationErr(validation.ValidationError{
			Field: "month", Message: "month must be a real calendar month"})
	}
	next := monthStart.AddDate(0, 1, 0).Format("2006-01-02")

	if err := ensureReady(s.db, repository.ChildrenTable, repository.ReadingEntriesTable); err != nil {
		return nil, err
	}

	board, err := s.childRepo.Leaderboard(start, next)
	if err != nil {
		return nil, err
	}
	if board == nil {
		board = []models.LeaderboardRow{}
	}
	return board, nil
}

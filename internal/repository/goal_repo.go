package repository

import (
	"database/sql"
	"fmt"

	"readnest/internal/database"
	"readnest/internal/models"
)

// GoalRepository handles database operations for goals
type GoalRepository struct {
	db database.DBTX
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db database.DBTX) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a goal, skipping silently when the id already exists
func (r *GoalRepository) Create(goal *models.Goal) error {
	query := r.db.GetDialect().InsertIgnoreQuery("goals",
		[]string{"id", "child_id", "unit", "target_value", "starts_on", "ends_on", "created_by", "created_at"})
	_, err := r.db.Exec(query,
		goal.ID, goal.ChildID, goal.Unit, goal.TargetValue,
		goal.StartsOn, goal.EndsOn, goal.CreatedBy, goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// ResolveForDate returns the goal applicable to the child on the given
// date: the most recently started goal whose interval [starts_on, ends_on)
// contains the date. Goals sharing a starts_on resolve to the one with the
// greatest id; with UUID ids the winner is arbitrary but stable, which is
// what callers need. Returns nil when no goal covers the date.
func (r *GoalRepository) ResolveForDate(childID, date string) (*models.Goal, error) {
	query := `
		SELECT id, child_id, unit, target_value, starts_on, ends_on
		  FROM goals
		 WHERE child_id = ? AND starts_on <= ? AND (ends_on IS NULL OR ? < ends_on)
		 ORDER BY starts_on DESC, id DESC
		 LIMIT 1
	`
	goal := &models.Goal{}
	err := r.db.QueryRow(query, childID, date, date).Scan(
		&goal.ID, &goal.ChildID, &goal.Unit, &goal.TargetValue,
		&goal.StartsOn, &goal.EndsOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve goal: %w", err)
	}
	return goal, nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"readnest/internal/cache"
	"readnest/internal/database"
	"readnest/internal/models"
	"readnest/internal/repository"
	"readnest/internal/validation"
)

// CreateGoalInput is the caller-supplied portion of a goal
type CreateGoalInput struct {
	Unit        string  `json:"unit"`
	TargetValue int     `json:"target_value"`
	StartsOn    string  `json:"starts_on"`
	EndsOn      *string `json:"ends_on"`
}

// GoalService handles goal writes
type GoalService struct {
	db       *database.DB
	goalRepo *repository.GoalRepository
	cache    cache.Cache
}

// NewGoalService creates a new goal service
func NewGoalService(db *database.DB, goalRepo *repository.GoalRepository, c cache.Cache) *GoalService {
	return &GoalService{db: db, goalRepo: goalRepo, cache: c}
}

// CreateGoal validates and stores a goal for a child. A new goal changes
// what "met" means for days already in the cached aggregate, so the
// child's cache entry is dropped too.
func (s *GoalService) CreateGoal(ctx context.Context, childID string, input CreateGoalInput) (string, error) {
	if err := validation.ValidateChildID(childID); err != nil {
		return "", validationErr(err)
	}
	if err := validation.ValidateUnit(input.Unit); err != nil {
		return "", validationErr(err)
	}
	if input.TargetValue <= 0 {
		return "", validationErr(validation.ValidationError{
			Field: "target_value", Message: "target_value must be positive"})
	}
	if err := validation.ValidateDate(input.StartsOn); err != nil {
		return "", validationErr(err)
	}
	if input.EndsOn != nil {
		if err := validation.ValidateDate(*input.EndsOn); err != nil {
			return "", validationErr(err)
		}
		// Interval is half-open; an empty one is a mistake
		if *input.EndsOn <= input.StartsOn {
			return "", validationErr(validation.ValidationError{
				Field: "ends_on", Message: "ends_on must be after starts_on"})
		}
	}

	if err := ensureReady(s.db, repository.GoalsTable); err != nil {
		return "", err
	}

	goal := &models.Goal{
		ID:          uuid.NewString(),
		ChildID:     childID,
		Unit:        input.Unit,
		TargetValue: input.TargetValue,
		StartsOn:    input.StartsOn,
		EndsOn:      input.EndsOn,
		CreatedBy:   "parent",
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := s.goalRepo.Create(goal); err != nil {
		return "", err
	}

	invalidateStats(ctx, s.cache, childID)
	return goal.ID, nil
}

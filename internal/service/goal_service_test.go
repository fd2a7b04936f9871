package service

import (
	"context"
	"testing"

	"readnest/internal/models"
	"readnest/internal/repository"
)

func TestGoalServiceCreateGoal(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	id, err := env.goals.CreateGoal(ctx, "child-1", CreateGoalInput{
		Unit: models.UnitPages, TargetValue: 20, StartsOn: "2025-10-25",
	})
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated goal id")
	}

	goal, err := repository.NewGoalRepository(env.db).ResolveForDate("child-1", "2025-10-25")
	if err != nil {
		t.Fatalf("ResolveForDate failed: %v", err)
	}
	if goal == nil || goal.ID != id || goal.TargetValue != 20 {
		t.Errorf("stored goal = %+v, want id=%s target=20", goal, id)
	}
}

func TestGoalServiceCreateGoalValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		childID string
		input   CreateGoalInput
	}{
		{"MissingChildID", "", CreateGoalInput{Unit: models.UnitPages, TargetValue: 20, StartsOn: "2025-10-25"}},
		{"BadUnit", "child-1", CreateGoalInput{Unit: "chapters", TargetValue: 20, StartsOn: "2025-10-25"}},
		{"ZeroTarget", "child-1", CreateGoalInput{Unit: models.UnitPages, TargetValue: 0, StartsOn: "2025-10-25"}},
		{"NegativeTarget", "child-1", CreateGoalInput{Unit: models.UnitPages, TargetValue: -5, StartsOn: "2025-10-25"}},
		{"MissingStart", "child-1", CreateGoalInput{Unit: models.UnitPages, TargetValue: 20}},
		{"BadEnd", "child-1", CreateGoalInput{Unit: models.UnitPages, TargetValue: 20, StartsOn: "2025-10-25", EndsOn: strP("soon")}},
		{"EmptyInterval", "child-1", CreateGoalInput{Unit: models.UnitPages, TargetValue: 20, StartsOn: "2025-10-25", EndsOn: strP("2025-10-25")}},
		{"InvertedInterval", "child-1", CreateGoalInput{Unit: models.UnitPages, TargetValue: 20, StartsOn: "2025-10-25", EndsOn: strP("2025-10-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.goals.CreateGoal(ctx, tt.childID, tt.input)
			if !isValidation(err) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}

	t.Run("BoundedIntervalAccepted", func(t *testing.T) {
		_, err := env.goals.CreateGoal(ctx, "child-1", CreateGoalInput{
			Unit: models.UnitMinutes, TargetValue: 15,
			StartsOn: "2025-10-01", EndsOn: strP("2025-11-01"),
		})
		if err != nil {
			t.Errorf("bounded goal rejected: %v", err)
		}
	})
}

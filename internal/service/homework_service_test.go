package service

import (
	"context"
	"testing"
)

func TestHomeworkServiceSubmit(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	id, err := env.homework.Submit(ctx, SubmitHomeworkInput{
		ChildID: "child-1", Date: "2025-10-25", Title: strP("Maths worksheet"),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated entry id")
	}

	entries, err := env.homework.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != id {
		t.Fatalf("got %d entries, want the submitted one", len(entries))
	}
	if entries[0].ChildName != "Linda" {
		t.Errorf("ChildName = %q, want Linda", entries[0].ChildName)
	}
}

func TestHomeworkServiceSubmitValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input SubmitHomeworkInput
	}{
		{"MissingChildID", SubmitHomeworkInput{Date: "2025-10-25", Title: strP("x")}},
		{"MissingDate", SubmitHomeworkInput{ChildID: "child-1", Title: strP("x")}},
		{"NoContent", SubmitHomeworkInput{ChildID: "child-1", Date: "2025-10-25"}},
		{"EmptyContent", SubmitHomeworkInput{
			ChildID: "child-1", Date: "2025-10-25",
			Title: strP(""), Notes: strP(""), PhotoKey: strP(""),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.homework.Submit(ctx, tt.input)
			if !isValidation(err) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}

	t.Run("PhotoOnlyAccepted", func(t *testing.T) {
		_, err := env.homework.Submit(ctx, SubmitHomeworkInput{
			ChildID: "child-1", Date: "2025-10-25", PhotoKey: strP("photos/abc"),
		})
		if err != nil {
			t.Errorf("photo-only submission rejected: %v", err)
		}
	})
}

func TestHomeworkServiceSoftDelete(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	id, err := env.homework.Submit(ctx, SubmitHomeworkInput{
		ChildID: "child-1", Date: "2025-10-25", Notes: strP("Finished chapter 3"),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	already, err := env.homework.SoftDelete(ctx, id)
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if already {
		t.Error("first delete reported already deleted")
	}

	already, err = env.homework.SoftDelete(ctx, id)
	if err != nil {
		t.Fatalf("repeat SoftDelete failed: %v", err)
	}
	if !already {
		t.Error("second delete should report already deleted")
	}

	entries, err := env.homework.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, e := range entries {
		if e.ID == id {
			t.Error("deleted entry still listed")
		}
	}
}

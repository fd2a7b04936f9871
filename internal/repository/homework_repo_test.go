package repository

import (
	"testing"
	"time"

	"readnest/internal/models"
)

func insertHomework(t *testing.T, repo *HomeworkRepository, id, childID, date string, title *string) {
	t.Helper()
	now := time.Now().UnixMilli()
	err := repo.Insert(&models.HomeworkEntry{
		ID:        id,
		ChildID:   childID,
		Date:      date,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to insert homework %s: %v", id, err)
	}
}

func TestHomeworkRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	seedChild(t, db, "child-1", "Linda")
	repo := NewHomeworkRepository(db)

	insertHomework(t, repo, "hw-1", "child-1", "2025-10-25", strPtr("Maths"))
	insertHomework(t, repo, "hw-2", "child-1", "2025-10-26", strPtr("Reading log"))

	entries, err := repo.List(50)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ChildName != "Linda" {
		t.Errorf("ChildName = %q, want Linda", entries[0].ChildName)
	}

	t.Run("SurvivesMissingChild", func(t *testing.T) {
		insertHomework(t, repo, "hw-3", "ghost-child", "2025-10-27", strPtr("Spelling"))
		entries, err := repo.List(50)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		found := false
		for _, e := range entries {
			if e.ID == "hw-3" {
				found = true
				if e.ChildName != "" {
					t.Errorf("ChildName = %q for missing child, want empty", e.ChildName)
				}
			}
		}
		if !found {
			t.Error("entry with missing child dropped from list")
		}
	})

	t.Run("ExcludesSoftDeleted", func(t *testing.T) {
		if err := repo.SoftDelete("hw-1", time.Now().UnixMilli()); err != nil {
			t.Fatalf("SoftDelete failed: %v", err)
		}
		entries, err := repo.List(50)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		for _, e := range entries {
			if e.ID == "hw-1" {
				t.Error("soft-deleted entry still listed")
			}
		}
	})
}

func TestHomeworkRepositoryOwnerOfLive(t *testing.T) {
	db := setupTestDB(t)
	seedChild(t, db, "child-1", "Linda")
	repo := NewHomeworkRepository(db)
	insertHomework(t, repo, "hw-1", "child-1", "2025-10-25", strPtr("Maths"))

	owner, err := repo.OwnerOfLive("hw-1")
	if err != nil {
		t.Fatalf("OwnerOfLive failed: %v", err)
	}
	if owner != "child-1" {
		t.Errorf("owner = %q, want child-1", owner)
	}

	if err := repo.SoftDelete("hw-1", time.Now().UnixMilli()); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	owner, err = repo.OwnerOfLive("hw-1")
	if err != nil {
		t.Fatalf("OwnerOfLive failed: %v", err)
	}
	if owner != "" {
		t.Errorf("owner = %q after delete, want empty", owner)
	}
}

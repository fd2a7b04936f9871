package repository

import (
	"testing"

	"readnest/internal/models"
)

func TestChildRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChildRepository(db)

	err := repo.CreateChild(&models.Child{
		ID:          "child-1",
		HouseholdID: "home-1",
		Name:        "Linda",
		PrimaryUnit: models.UnitPages,
	})
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	child, err := repo.GetChildByID("child-1")
	if err != nil {
		t.Fatalf("GetChildByID failed: %v", err)
	}
	if child == nil {
		t.Fatal("expected child, got nil")
	}
	if child.Name != "Linda" || child.HouseholdID != "home-1" || child.PrimaryUnit != models.UnitPages {
		t.Errorf("got %+v, want Linda/home-1/pages", child)
	}
	if child.CreatedAt == 0 {
		t.Error("CreatedAt not set")
	}

	t.Run("CreateIsIdempotent", func(t *testing.T) {
		err := repo.CreateChild(&models.Child{
			ID:   "child-1",
			Name: "Someone Else",
		})
		if err != nil {
			t.Fatalf("repeat CreateChild failed: %v", err)
		}
		child, err := repo.GetChildByID("child-1")
		if err != nil {
			t.Fatalf("GetChildByID failed: %v", err)
		}
		if child.Name != "Linda" {
			t.Errorf("existing row overwritten, name = %q", child.Name)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		child, err := repo.GetChildByID("no-such-child")
		if err != nil {
			t.Fatalf("GetChildByID failed: %v", err)
		}
		if child != nil {
			t.Errorf("expected nil for unknown child, got %+v", child)
		}
	})
}

func TestChildRepositoryLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	seedChild(t, db, "child-1", "Linda")
	seedChild(t, db, "child-2", "Lara")
	seedChild(t, db, "child-3", "Anna")
	reading := NewReadingRepository(db)
	repo := NewChildRepository(db)

	insertReading(t, reading, "entry-1", "child-1", "2025-10-05", 10, 0)
	insertReading(t, reading, "entry-2", "child-1", "2025-10-06", 5, 0)
	insertReading(t, reading, "entry-3", "child-2", "2025-10-07", 20, 0)
	// Outside the October window
	insertReading(t, reading, "entry-4", "child-1", "2025-11-01", 99, 0)

	board, err := repo.Leaderboard("2025-10-01", "2025-11-01")
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("got %d rows, want 3", len(board))
	}
	if board[0].ChildID != "child-2" || board[0].Pages != 20 {
		t.Errorf("first = %s with %d pages, want child-2 with 20", board[0].ChildID, board[0].Pages)
	}
	if board[1].ChildID != "child-1" || board[1].Pages != 15 {
		t.Errorf("second = %s with %d pages, want child-1 with 15", board[1].ChildID, board[1].Pages)
	}
	// Children without entries still appear
	if board[2].ChildID != "child-3" || board[2].Pages != 0 {
		t.Errorf("third = %s with %d pages, want child-3 with 0", board[2].ChildID, board[2].Pages)
	}

	t.Run("TiesBreakByName", func(t *testing.T) {
		insertReading(t, reading, "entry-5", "child-3", "2025-10-08", 15, 0)
		board, err := repo.Leaderboard("2025-10-01", "2025-11-01")
		if err != nil {
			t.Fatalf("Leaderboard failed: %v", err)
		}
		// Anna and Linda both hold 15; Anna sorts first
		if board[1].Name != "Anna" || board[2].Name != "Linda" {
			t.Errorf("tie order = [%s, %s], want [Anna, Linda]", board[1].Name, board[2].Name)
		}
	})

	t.Run("DeletedEntriesExcluded", func(t *testing.T) {
		if err := reading.SoftDelete("entry-3", 1); err != nil {
			t.Fatalf("SoftDelete failed: %v", err)
		}
		board, err := repo.Leaderboard("2025-10-01", "2025-11-01")
		if err != nil {
			t.Fatalf("Leaderboard failed: %v", err)
		}
		for _, row := range board {
			if row.ChildID == "child-2" && row.Pages != 0 {
				t.Errorf("child-2 pages = %d after delete, want 0", row.Pages)
			}
		}
	})
}

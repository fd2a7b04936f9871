package repository

import (
	"path/filepath"
	"testing"

	"readnest/internal/database"
	"readnest/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, table := range ManagedTables {
		status, err := db.EnsureSchema(table)
		if err != nil {
			t.Fatalf("Failed to ensure schema for %s: %v", table.Name, err)
		}
		if !status.Conformant {
			t.Fatalf("Table %s not conformant, missing %v", table.Name, status.StillMissing)
		}
	}
	return db
}

func seedChild(t *testing.T, db *database.DB, id, name string) {
	t.Helper()
	repo := NewChildRepository(db)
	err := repo.CreateChild(&models.Child{
		ID:          id,
		HouseholdID: "home-1",
		Name:        name,
		PrimaryUnit: models.UnitPages,
	})
	if err != nil {
		t.Fatalf("Failed to seed child %s: %v", id, err)
	}
}

func strPtr(s string) *string {
	return &s
}

// Command seed loads the demo household into the database. Safe to run
// repeatedly: every insert skips rows that already exist.
package main

import (
	"log"
	"time"

	"readnest/internal/config"
	"readnest/internal/database"
	"readnest/internal/models"
	"readnest/internal/repository"
)

func main() {
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	for _, table := range repository.ManagedTables {
		status, err := db.EnsureSchema(table)
		if err != nil {
			log.Fatalf("Failed to ensure schema for %s: %v", table.Name, err)
		}
		if len(status.StillMissing) > 0 {
			log.Fatalf("Table %s not ready, missing: %v", table.Name, status.StillMissing)
		}
	}

	// One transaction so a partial seed never survives a failure
	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	childRepo := repository.NewChildRepository(tx)
	goalRepo := repository.NewGoalRepository(tx)

	children := []models.Child{
		{ID: "child-1", HouseholdID: "home-1", Name: "Linda", PrimaryUnit: models.UnitPages},
		{ID: "child-2", HouseholdID: "home-1", Name: "Lara", PrimaryUnit: models.UnitPages},
	}
	for i := range children {
		if err := childRepo.CreateChild(&children[i]); err != nil {
			log.Fatalf("Failed to seed child %s: %v", children[i].ID, err)
		}
	}

	now := time.Now().UnixMilli()
	goals := []models.Goal{
		{ID: "goal-1", ChildID: "child-1", Unit: models.UnitPages, TargetValue: 20,
			StartsOn: "2025-10-25", CreatedBy: "parent", CreatedAt: now},
		{ID: "goal-2", ChildID: "child-2", Unit: models.UnitPages, TargetValue: 15,
			StartsOn: "2025-10-25", CreatedBy: "parent", CreatedAt: now},
	}
	for i := range goals {
		if err := goalRepo.Create(&goals[i]); err != nil {
			log.Fatalf("Failed to seed goal %s: %v", goals[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit seed: %v", err)
	}

	log.Println("Seeded demo household: child-1, child-2, goal-1, goal-2")
}

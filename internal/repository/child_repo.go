package repository

import (
	"database/sql"
	"fmt"
	"time"

	"readnest/internal/database"
	"readnest/internal/models"
)

// ChildRepository handles database operations for children
type ChildRepository struct {
	db database.DBTX
}

// NewChildRepository creates a new child repository
func NewChildRepository(db database.DBTX) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild inserts a child profile, skipping silently when the id
// already exists (seeding is re-runnable)
func (r *ChildRepository) CreateChild(child *models.Child) error {
	now := time.Now().UnixMilli()
	query := r.db.GetDialect().InsertIgnoreQuery("children",
		[]string{"id", "household_id", "name", "primary_unit", "created_at", "updated_at"})
	_, err := r.db.Exec(query,
		child.ID, child.HouseholdID, child.Name, child.PrimaryUnit, now, now)
	if err != nil {
		return fmt.Errorf("failed to create child: %w", err)
	}
	return nil
}

// GetChildByID retrieves a child by ID. Returns nil when not found.
func (r *ChildRepository) GetChildByID(childID string) (*models.Child, error) {
	query := `
		SELECT id, COALESCE(household_id, ''), COALESCE(name, ''), COALESCE(primary_unit, ''),
		       COALESCE(created_at, 0), COALESCE(updated_at, 0)
		FROM children
		WHERE id = ?
	`
	child := &models.Child{}
	err := r.db.QueryRow(query, childID).Scan(
		&child.ID,
		&child.HouseholdID,
		&child.Name,
		&child.PrimaryUnit,
		&child.CreatedAt,
		&child.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}

	return child, nil
}

// Leaderboard sums non-deleted reading pages per child over the date
// window [start, end). Children without entries appear with zero pages.
// Ties on the total are broken by name ascending.
func (r *ChildRepository) Leaderboard(start, end string) ([]models.LeaderboardRow, error) {
	query := `
		SELECT c.id, c.name, COALESCE(SUM(re.pages), 0) AS pages
		  FROM children c
	 LEFT JOIN reading_entries re
		    ON re.child_id = c.id
		   AND re.date >= ? AND re.date < ?
		   AND re.deleted_at IS NULL
	  GROUP BY c.id, c.name
	  ORDER BY pages DESC, c.name ASC
	`
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var board []models.LeaderboardRow
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.ChildID, &row.Name, &row.Pages); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		board = append(board, row)
	}
	return board, rows.Err()
}

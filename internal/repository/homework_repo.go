package repository

import (
	"database/sql"
	"fmt"

	"readnest/internal/database"
	"readnest/internal/models"
)

// HomeworkRepository handles database operations for homework entries
type HomeworkRepository struct {
	db database.DBTX
}

// NewHomeworkRepository creates a new homework entry repository
func NewHomeworkRepository(db database.DBTX) *HomeworkRepository {
	return &HomeworkRepository{db: db}
}

// Insert stores a new homework entry
func (r *HomeworkRepository) Insert(entry *models.HomeworkEntry) error {
	query := `
		INSERT INTO homework_entries
			(id, child_id, date, title, notes, photo_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		entry.ID, entry.ChildID, entry.Date, entry.Title, entry.Notes,
		entry.PhotoKey, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert homework entry: %w", err)
	}
	return nil
}

// List returns recent non-deleted homework across all children, newest
// first. The child join is left outer: a submission survives its child
// record going missing.
func (r *HomeworkRepository) List(limit int) ([]models.HomeworkEntry, error) {
	query := `
		SELECT he.id, COALESCE(he.child_id, ''), COALESCE(he.date, ''), he.title, he.notes, he.photo_key,
		       COALESCE(he.created_at, 0), COALESCE(c.name, '')
		  FROM homework_entries he
		  LEFT JOIN children c ON c.id = he.child_id
		 WHERE he.deleted_at IS NULL
		 ORDER BY he.created_at DESC
		 LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query homework entries: %w", err)
	}
	defer rows.Close()

	var entries []models.HomeworkEntry
	for rows.Next() {
		var e models.HomeworkEntry
		if err := rows.Scan(
			&e.ID, &e.ChildID, &e.Date, &e.Title, &e.Notes, &e.PhotoKey,
			&e.CreatedAt, &e.ChildName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan homework entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// OwnerOfLive returns the owning child id of a non-deleted entry, or ""
// when absent or already soft-deleted
func (r *HomeworkRepository) OwnerOfLive(entryID string) (string, error) {
	var childID string
	err := r.db.QueryRow(
		"SELECT COALESCE(child_id, '') FROM homework_entries WHERE id = ? AND deleted_at IS NULL",
		entryID).Scan(&childID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up homework owner: %w", err)
	}
	return childID, nil
}

// SoftDelete marks a homework entry deleted at the given timestamp
func (r *HomeworkRepository) SoftDelete(entryID string, now int64) error {
	_, err := r.db.Exec(
		"UPDATE homework_entries SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, now, entryID)
	if err != nil {
		return fmt.Errorf("failed to soft-delete homework entry: %w", err)
	}
	return nil
}

package repository

import (
	"database/sql"
	"fmt"

	"readnest/internal/database"
	"readnest/internal/models"
)

// ReadingRepository handles database operations for reading entries
type ReadingRepository struct {
	db database.DBTX
}

// NewReadingRepository creates a new reading entry repository
func NewReadingRepository(db database.DBTX) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Insert stores a new reading entry
func (r *ReadingRepository) Insert(entry *models.ReadingEntry) error {
	query := `
		INSERT INTO reading_entries
			(id, child_id, date, pages, minutes, book_title, book_author, notes, photo_key, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		entry.ID, entry.ChildID, entry.Date, entry.Pages, entry.Minutes,
		entry.BookTitle, entry.BookAuthor, entry.Notes, entry.PhotoKey,
		entry.Status, entry.CreatedBy, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reading entry: %w", err)
	}
	return nil
}

// ListByChild returns the child's most recent non-deleted entries, newest
// first, joined with the child's name
func (r *ReadingRepository) ListByChild(childID string, limit int) ([]models.ReadingEntry, error) {
	query := `
		SELECT re.id, re.child_id, re.date,
		       COALESCE(re.pages, 0), COALESCE(re.minutes, 0),
		       re.book_title, re.photo_key, re.notes,
		       COALESCE(re.created_at, 0), COALESCE(c.name, '')
		  FROM reading_entries re
		  JOIN children c ON c.id = re.child_id
		 WHERE re.child_id = ? AND re.deleted_at IS NULL
		 ORDER BY re.created_at DESC
		 LIMIT ?
	`
	rows, err := r.db.Query(query, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ReadingEntry
	for rows.Next() {
		var e models.ReadingEntry
		if err := rows.Scan(
			&e.ID, &e.ChildID, &e.Date, &e.Pages, &e.Minutes,
			&e.BookTitle, &e.PhotoKey, &e.Notes,
			&e.CreatedAt, &e.ChildName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reading entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// OwnerOfLive returns the owning child id of a non-deleted entry, or ""
// when the entry is absent or already soft-deleted
func (r *ReadingRepository) OwnerOfLive(entryID string) (string, error) {
	var childID string
	err := r.db.QueryRow(
		"SELECT COALESCE(child_id, '') FROM reading_entries WHERE id = ? AND deleted_at IS NULL",
		entryID).Scan(&childID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up entry owner: %w", err)
	}
	return childID, nil
}

// SoftDelete marks an entry deleted at the given timestamp
func (r *ReadingRepository) SoftDelete(entryID string, now int64) error {
	_, err := r.db.Exec(
		"UPDATE reading_entries SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, now, entryID)
	if err != nil {
		return fmt.Errorf("failed to soft-delete reading entry: %w", err)
	}
	return nil
}

// DailyTotals sums pages and minutes per date over the child's most recent
// windowDays distinct active dates. Dates with no entries do not appear.
// Results are ordered ascending, oldest first.
func (r *ReadingRepository) DailyTotals(childID string, windowDays int) ([]models.DailyStat, error) {
	query := `
		WITH days AS (
			SELECT date FROM reading_entries
			 WHERE child_id = ? AND deleted_at IS NULL
			 GROUP BY date ORDER BY date DESC LIMIT ?
		)
		SELECT d.date,
		       COALESCE(SUM(re.pages), 0)   AS pages,
		       COALESCE(SUM(re.minutes), 0) AS minutes
		  FROM days d
		  LEFT JOIN reading_entries re
		    ON re.child_id = ? AND re.date = d.date AND re.deleted_at IS NULL
		 GROUP BY d.date
		 ORDER BY d.date ASC
	`
	rows, err := r.db.Query(query, childID, windowDays, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	var stats []models.DailyStat
	for rows.Next() {
		var s models.DailyStat
		if err := rows.Scan(&s.Date, &s.Pages, &s.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

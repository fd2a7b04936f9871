package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"readnest/internal/database"
	"readnest/internal/models"
	"readnest/internal/repository"
	"readnest/internal/validation"
)

// SubmitHomeworkInput is the caller-supplied portion of a homework entry
type SubmitHomeworkInput struct {
	ChildID  string  `json:"child_id"`
	Date     string  `json:"date"`
	Title    *string `json:"title"`
	Notes    *string `json:"notes"`
	PhotoKey *string `json:"photo_key"`
}

// HomeworkService handles homework submissions. Homework has no numeric
// measures and does not feed the daily reading aggregates, so its writes
// do not touch the stats cache.
type HomeworkService struct {
	db           *database.DB
	homeworkRepo *repository.HomeworkRepository
}

// NewHomeworkService creates a new homework service
func NewHomeworkService(db *database.DB, homeworkRepo *repository.HomeworkRepository) *HomeworkService {
	return &HomeworkService{db: db, homeworkRepo: homeworkRepo}
}

// Submit validates and stores a homework entry, returning its id
func (s *HomeworkService) Submit(ctx context.Context, input SubmitHomeworkInput) (string, error) {
	if err := validation.ValidateChildID(input.ChildID); err != nil {
		return "", validationErr(err)
	}
	if err := validation.ValidateDate(input.Date); err != nil {
		return "", validationErr(err)
	}
	if !hasText(input.Title) && !hasText(input.Notes) && !hasText(input.PhotoKey) {
		return "", validationErr(validation.ValidationError{
			Field: "title", Message: "provide at least one of: title, notes, photo_key"})
	}

	if err := ensureReady(s.db, repository.ChildrenTable, repository.HomeworkEntriesTable); err != nil {
		return "", err
	}

	now := time.Now().UnixMilli()
	entry := &models.HomeworkEntry{
		ID:        uuid.NewString(),
		ChildID:   input.ChildID,
		Date:      input.Date,
		Title:     input.Title,
		Notes:     input.Notes,
		PhotoKey:  input.PhotoKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.homeworkRepo.Insert(entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// List returns recent homework across all children, newest first
func (s *HomeworkService) List(ctx context.Context, limit int) ([]models.HomeworkEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 200 {
		limit = 200
	}

	if err := ensureReady(s.db, repository.ChildrenTable, repository.HomeworkEntriesTable); err != nil {
		return nil, err
	}

	entries, err := s.homeworkRepo.List(limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.HomeworkEntry{}
	}
	return entries, nil
}

// SoftDelete marks a homework entry deleted; a second delete of the same
// entry succeeds with alreadyDeleted true
func (s *HomeworkService) SoftDelete(ctx context.Context, entryID string) (alreadyDeleted bool, err error) {
	if err := ensureReady(s.db, repository.HomeworkEntriesTable); err != nil {
		return false, err
	}

	childID, err := s.homeworkRepo.OwnerOfLive(entryID)
	if err != nil {
		return false, err
	}
	if childID == "" {
		return true, nil
	}

	if err := s.homeworkRepo.SoftDelete(entryID, time.Now().UnixMilli()); err != nil {
		return false, err
	}
	return false, nil
}

// hasText reports whether an optional field carries a non-empty value
func hasText(s *string) bool {
	return s != nil && *s != ""
}

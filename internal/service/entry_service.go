package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"readnest/internal/cache"
	"readnest/internal/database"
	"readnest/internal/models"
	"readnest/internal/repository"
	"readnest/internal/validation"
)

// RecordReadingInput is the caller-supplied portion of a reading entry
type RecordReadingInput struct {
	Date       string  `json:"date"`
	Pages      int     `json:"pages"`
	Minutes    int     `json:"minutes"`
	BookTitle  *string `json:"book_title"`
	BookAuthor *string `json:"book_author"`
	Notes      *string `json:"notes"`
	PhotoKey   *string `json:"photo_key"`
}

// EntryService handles reading entry writes and reads. Every successful
// insert or soft-delete deletes the owning child's cached aggregate before
// returning, so the next stats read recomputes.
type EntryService struct {
	db          *database.DB
	readingRepo *repository.ReadingRepository
	cache       cache.Cache
}

// NewEntryService creates a new reading entry service
func NewEntryService(db *database.DB, readingRepo *repository.ReadingRepository, c cache.Cache) *EntryService {
	return &EntryService{db: db, readingRepo: readingRepo, cache: c}
}

// RecordReading validates and inserts a reading entry, returning its id
func (s *EntryService) RecordReading(ctx context.Context, childID string, input RecordReadingInput) (string, error) {
	if err := validation.ValidateChildID(childID); err != nil {
		return "", validationErr(err)
	}
	if err := validation.ValidateDate(input.Date); err != nil {
		return "", validationErr(err)
	}
	if input.Pages < 0 || input.Minutes < 0 {
		return "", validationErr(validation.ValidationError{
			Field: "pages", Message: "pages and minutes must not be negative"})
	}
	if input.Pages == 0 && input.Minutes == 0 {
		return "", validationErr(validation.ValidationError{
			Field: "pages", Message: "pages or minutes required"})
	}

	if err := ensureReady(s.db, repository.ReadingEntriesTable); err != nil {
		return "", err
	}

	now := time.Now().UnixMilli()
	entry := &models.ReadingEntry{
		ID:         uuid.NewString(),
		ChildID:    childID,
		Date:       input.Date,
		Pages:      input.Pages,
		Minutes:    input.Minutes,
		BookTitle:  input.BookTitle,
		BookAuthor: input.BookAuthor,
		Notes:      input.Notes,
		PhotoKey:   input.PhotoKey,
		Status:     "ok",
		CreatedBy:  "child",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.readingRepo.Insert(entry); err != nil {
		return "", err
	}

	invalidateStats(ctx, s.cache, childID)
	return entry.ID, nil
}

// ListReadings returns the child's recent entries, newest first. Limit is
// clamped to 200; zero or negative means the default of 100.
func (s *EntryService) ListReadings(ctx context.Context, childID string, limit int) ([]models.ReadingEntry, error) {
	if err := validation.ValidateChildID(childID); err != nil {
		return nil, validationErr(err)
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 200 {
		limit = 200
	}

	if err := ensureReady(s.db, repository.ReadingEntriesTable); err != nil {
		return nil, err
	}

	entries, err := s.readingRepo.ListByChild(childID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ReadingEntry{}
	}
	return entries, nil
}

// SoftDeleteReading marks an entry deleted. Deleting an entry that is
// absent or already deleted succeeds with alreadyDeleted true.
func (s *EntryService) SoftDeleteReading(ctx context.Context, entryID string) (alreadyDeleted bool, err error) {
	if err := ensureReady(s.db, repository.ReadingEntriesTable); err != nil {
		return false, err
	}

	childID, err := s.readingRepo.OwnerOfLive(entryID)
	if err != nil {
		return false, err
	}
	if childID == "" {
		return true, nil
	}

	if err := s.readingRepo.SoftDelete(entryID, time.Now().UnixMilli()); err != nil {
		return false, err
	}

	invalidateStats(ctx, s.cache, childID)
	return false, nil
}

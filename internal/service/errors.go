package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"readnest/internal/database"
)

// Sentinel errors services return; handlers map them to HTTP statuses
// with errors.Is.
var (
	// ErrValidation marks caller mistakes: malformed dates, missing
	// required fields. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrSchemaNotReady means EnsureSchema left required columns
	// missing; the underlying read or write must not be attempted.
	ErrSchemaNotReady = errors.New("schema not ready")

	// ErrNotFound marks an absent entry or blob
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured marks a required binding (store, AI endpoint)
	// that is absent from configuration
	ErrNotConfigured = errors.New("not configured")
)

// validationErr wraps a field-level failure so handlers can classify it
func validationErr(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// ensureReady reconciles each table's schema and refuses when any
// required column is still missing afterward
func ensureReady(db *database.DB, tables ...database.TableSchema) error {
	for _, t := range tables {
		status, err := db.EnsureSchema(t)
		if err != nil {
			return err
		}
		if len(status.StillMissing) > 0 {
			return fmt.Errorf("%w: %s missing %s",
				ErrSchemaNotReady, t.Name, strings.Join(status.StillMissing, ","))
		}
	}
	return nil
}

// logCacheErr records a swallowed cache failure. The cache is best-effort
// only; its failures never fail an operation.
func logCacheErr(op string, err error) {
	if err != nil {
		log.Printf("Cache %s failed: %v", op, err)
	}
}

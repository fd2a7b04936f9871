// Package blobstore stores photo blobs by opaque key. The rest of the
// system only ever holds keys; backends are interchangeable.
package blobstore

import (
	"context"
	"errors"
	"regexp"
)

// ErrNotFound is returned when no blob exists under a key
var ErrNotFound = errors.New("blob not found")

// Store is a content-addressable blob store
type Store interface {
	// Put stores bytes under a key with their content type
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get returns the bytes and content type stored under a key, or
	// ErrNotFound
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// keys are minted by the upload handshake; anything else is rejected
// before it reaches a backend
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9/_.-]*$`)

// ValidKey reports whether a client-supplied key is safe to use
func ValidKey(key string) bool {
	if !keyPattern.MatchString(key) {
		return false
	}
	// No traversal segments
	for i := 0; i+1 < len(key); i++ {
		if key[i] == '.' && key[i+1] == '.' {
			return false
		}
	}
	return true
}

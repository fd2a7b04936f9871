// Package cache provides the key-value cache used for computed aggregates.
// The cache is a disposable accessory: every implementation may miss at
// any time and the system stays correct, merely slower.
package cache

import (
	"context"
	"time"
)

// Cache is a get/put/delete store with per-key TTL
type Cache interface {
	// Get returns the stored value and true on a hit
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}

// Noop is the always-miss cache used when no backend is configured
type Noop struct{}

// NewNoop creates a cache that never stores anything
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (n *Noop) Delete(ctx context.Context, key string) error {
	return nil
}

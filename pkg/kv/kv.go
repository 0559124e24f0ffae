package kv

import (
	"context"
	"time"
)

// Store is the minimal key/value contract the cache layer depends on.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any existing entry.
	// A zero ttl means the entry never expires at the store level.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Package kvstore provides typed access to the shared key-value cache service.
package kvstore

import (
	"context"
	"time"
)

// Store is the key-value contract used by the caches, the ticket store and the rate limiter.
// Every operation is a network round-trip; failures are reported as store_unavailable errors.
type Store interface {
	// Get returns the value and true, or false when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key. A zero ttl keeps the key until it is deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// TTL returns the remaining lifetime of key. It is negative when the key
	// has no expiry or does not exist.
	TTL(ctx context.Context, key string) (time.Duration, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// GetDel atomically reads and deletes key.
	GetDel(ctx context.Context, key string) ([]byte, bool, error)
	// Scan lists keys matching a glob pattern.
	Scan(ctx context.Context, pattern string) ([]string, error)
	// Flush removes every key of the selected database.
	Flush(ctx context.Context) error
}

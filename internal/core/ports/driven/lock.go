package driven

import (
	"context"
	"time"
)

// DistributedLock coordinates work across instances (Redis).
// Used by the cache janitor so only one instance sweeps at a time.
type DistributedLock interface {
	// Acquire attempts to take a named lock with the given TTL.
	// Returns true if acquired, false if held by another instance.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release releases a named lock held by this instance
	Release(ctx context.Context, name string) error
}

package driven

import (
	"context"
	"time"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// ContextStore holds cached customer contexts keyed by domain.ContextKey.
// Entries are never expired by the store itself; freshness is decided by the
// context service, and a janitor sweeps long-idle entries to bound growth.
type ContextStore interface {
	// Get retrieves an entry, or domain.ErrNotFound when absent
	Get(ctx context.Context, key string) (*domain.ContextEntry, error)

	// Put stores an entry, replacing any prior entry for the key
	Put(ctx context.Context, key string, entry *domain.ContextEntry) error

	// Delete removes exactly one entry; absent keys are not an error
	Delete(ctx context.Context, key string) error

	// DeleteAll removes every entry
	DeleteAll(ctx context.Context) error

	// DeleteOlderThan removes entries computed before cutoff and returns
	// how many were removed
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

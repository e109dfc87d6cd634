// Package memory provides in-process adapter implementations used by
// single-instance deployments and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContextStore = (*ContextStore)(nil)

// ContextStore implements driven.ContextStore with a plain map.
// Entries live until a sweep removes them; freshness is the caller's concern.
type ContextStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.ContextEntry
}

// NewContextStore creates a new in-memory ContextStore
func NewContextStore() *ContextStore {
	return &ContextStore{
		entries: make(map[string]*domain.ContextEntry),
	}
}

// Get retrieves a cached entry by key
func (s *ContextStore) Get(ctx context.Context, key string) (*domain.ContextEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// Put stores an entry under the key, replacing any previous one
func (s *ContextStore) Put(ctx context.Context, key string, entry *domain.ContextEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

// Delete removes one entry; removing a missing key is not an error
func (s *ContextStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// DeleteAll removes every entry
func (s *ContextStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*domain.ContextEntry)
	return nil
}

// DeleteOlderThan removes entries written before the cutoff and reports how
// many were removed
func (s *ContextStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, entry := range s.entries {
		if entry.Timestamp.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries
func (s *ContextStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

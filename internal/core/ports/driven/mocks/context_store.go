package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// MockContextStore is a mock implementation of ContextStore for testing
type MockContextStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.ContextEntry

	// GetErr, when set, is returned by Get
	GetErr error
	// PutErr, when set, is returned by Put
	PutErr error
}

// NewMockContextStore creates a new MockContextStore
func NewMockContextStore() *MockContextStore {
	return &MockContextStore{
		entries: make(map[string]*domain.ContextEntry),
	}
}

func (m *MockContextStore) Get(ctx context.Context, key string) (*domain.ContextEntry, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (m *MockContextStore) Put(ctx context.Context, key string, entry *domain.ContextEntry) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
	return nil
}

func (m *MockContextStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MockContextStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*domain.ContextEntry)
	return nil
}

func (m *MockContextStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, entry := range m.entries {
		if entry.Timestamp.Before(cutoff) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries
func (m *MockContextStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

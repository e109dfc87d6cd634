package mocks

import (
	"context"
	"sync"
	"time"
)

// MockLock is a mock implementation of DistributedLock for testing
type MockLock struct {
	mu       sync.Mutex
	held     map[string]bool
	acquires int

	// Denied, when true, makes every Acquire return false
	Denied bool
	// Err, when set, is returned by Acquire
	Err error
}

// NewMockLock creates a new MockLock
func NewMockLock() *MockLock {
	return &MockLock{held: make(map[string]bool)}
}

func (m *MockLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acquires++
	if m.Err != nil {
		return false, m.Err
	}
	if m.Denied || m.held[name] {
		return false, nil
	}
	m.held[name] = true
	return true, nil
}

func (m *MockLock) Release(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, name)
	return nil
}

// Acquires returns how many times Acquire was invoked
func (m *MockLock) Acquires() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquires
}

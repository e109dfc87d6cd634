package mocks

import (
	"context"
	"sync"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// MockCommerceFetcher is a mock implementation of CommerceFetcher for testing
type MockCommerceFetcher struct {
	mu    sync.Mutex
	calls int

	// Data is returned by FetchCustomer when FetchFn is not set
	Data *domain.CommerceData
	// Err, when set, is returned by FetchCustomer
	Err error
	// FetchFn, when set, overrides the canned Data/Err behaviour
	FetchFn func(email string) (*domain.CommerceData, error)
}

// NewMockCommerceFetcher creates a new MockCommerceFetcher
func NewMockCommerceFetcher() *MockCommerceFetcher {
	return &MockCommerceFetcher{}
}

func (m *MockCommerceFetcher) FetchCustomer(ctx context.Context, email string) (*domain.CommerceData, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.FetchFn != nil {
		return m.FetchFn(email)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}

// Calls returns how many times FetchCustomer was invoked
func (m *MockCommerceFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockHelpdeskFetcher is a mock implementation of HelpdeskFetcher for testing
type MockHelpdeskFetcher struct {
	mu    sync.Mutex
	calls int

	// Data is returned by FetchCustomer when FetchFn is not set
	Data *domain.HelpdeskData
	// Err, when set, is returned by FetchCustomer
	Err error
	// FetchFn, when set, overrides the canned Data/Err behaviour
	FetchFn func(email, conversationID string) (*domain.HelpdeskData, error)
}

// NewMockHelpdeskFetcher creates a new MockHelpdeskFetcher
func NewMockHelpdeskFetcher() *MockHelpdeskFetcher {
	return &MockHelpdeskFetcher{}
}

func (m *MockHelpdeskFetcher) FetchCustomer(ctx context.Context, email, conversationID string) (*domain.HelpdeskData, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.FetchFn != nil {
		return m.FetchFn(email, conversationID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}

// Calls returns how many times FetchCustomer was invoked
func (m *MockHelpdeskFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

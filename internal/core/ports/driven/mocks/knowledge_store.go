package mocks

import (
	"context"
	"sync"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// MockKnowledgeStore is a mock implementation of KnowledgeStore for testing
type MockKnowledgeStore struct {
	mu   sync.RWMutex
	docs map[string]*domain.KnowledgeDocument // key: tenantID:id

	// SaveErr, when set, is returned by Save
	SaveErr error
	// ListErr, when set, is returned by List and ListEnabled
	ListErr error
}

// NewMockKnowledgeStore creates a new MockKnowledgeStore
func NewMockKnowledgeStore() *MockKnowledgeStore {
	return &MockKnowledgeStore{
		docs: make(map[string]*domain.KnowledgeDocument),
	}
}

func (m *MockKnowledgeStore) Save(ctx context.Context, doc *domain.KnowledgeDocument) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.TenantID+":"+doc.ID] = doc
	return nil
}

func (m *MockKnowledgeStore) Get(ctx context.Context, tenantID, id string) (*domain.KnowledgeDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[tenantID+":"+id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *MockKnowledgeStore) ListEnabled(ctx context.Context, tenantID string) ([]*domain.KnowledgeDocument, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []*domain.KnowledgeDocument
	for _, doc := range m.docs {
		if doc.TenantID == tenantID && doc.Enabled {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MockKnowledgeStore) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.KnowledgeDocument, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []*domain.KnowledgeDocument
	for _, doc := range m.docs {
		if doc.TenantID == tenantID {
			docs = append(docs, doc)
		}
	}
	if offset >= len(docs) {
		return nil, nil
	}
	docs = docs[offset:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs, nil
}

func (m *MockKnowledgeStore) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[tenantID+":"+id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Enabled = enabled
	return nil
}

func (m *MockKnowledgeStore) Delete(ctx context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[tenantID+":"+id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, tenantID+":"+id)
	return nil
}

func (m *MockKnowledgeStore) Count(ctx context.Context, tenantID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, doc := range m.docs {
		if doc.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

// MockTenantStore is a mock implementation of TenantStore for testing
type MockTenantStore struct {
	mu      sync.RWMutex
	tenants map[string]*domain.Tenant
}

// NewMockTenantStore creates a new MockTenantStore
func NewMockTenantStore() *MockTenantStore {
	return &MockTenantStore{
		tenants: make(map[string]*domain.Tenant),
	}
}

func (m *MockTenantStore) Save(ctx context.Context, tenant *domain.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[tenant.ID] = tenant
	return nil
}

func (m *MockTenantStore) Get(ctx context.Context, id string) (*domain.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tenant, ok := m.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return tenant, nil
}

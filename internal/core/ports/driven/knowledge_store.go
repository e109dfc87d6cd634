package driven

import (
	"context"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// KnowledgeStore handles knowledge document persistence (PostgreSQL)
type KnowledgeStore interface {
	// Save creates or updates a document together with its chunks
	Save(ctx context.Context, doc *domain.KnowledgeDocument) error

	// Get retrieves a document by ID within a tenant
	Get(ctx context.Context, tenantID, id string) (*domain.KnowledgeDocument, error)

	// ListEnabled retrieves all enabled documents for a tenant, with chunks
	ListEnabled(ctx context.Context, tenantID string) ([]*domain.KnowledgeDocument, error)

	// List retrieves all documents for a tenant with pagination
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.KnowledgeDocument, error)

	// SetEnabled toggles a document in or out of search
	SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error

	// Delete deletes a document and its chunks
	Delete(ctx context.Context, tenantID, id string) error

	// Count returns the document count for a tenant
	Count(ctx context.Context, tenantID string) (int, error)
}

// TenantStore handles tenant persistence (PostgreSQL)
type TenantStore interface {
	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *domain.Tenant) error

	// Get retrieves a tenant by ID
	Get(ctx context.Context, id string) (*domain.Tenant, error)
}

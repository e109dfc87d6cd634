package driving

import (
	"context"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// DocumentService is the knowledge ingestion surface: it normalizes, chunks
// and persists documents supplied by uploads or scrapes.
type DocumentService interface {
	// Upload ingests a new document, chunking content beyond the
	// chunking threshold.
	Upload(ctx context.Context, tenantID string, req domain.UploadDocumentRequest) (*domain.KnowledgeDocument, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, tenantID, id string) (*domain.KnowledgeDocument, error)

	// List retrieves documents with pagination.
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.KnowledgeDocument, error)

	// SetEnabled toggles a document in or out of search.
	SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error

	// Delete removes a document and its chunks.
	Delete(ctx context.Context, tenantID, id string) error
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parley-labs/parley-core/internal/chunker"
	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven"
	"github.com/parley-labs/parley-core/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface.
// It is the ingestion collaborator for the relevance engine: documents are
// normalized and chunked here, before they ever reach a search call.
type documentService struct {
	store  driven.KnowledgeStore
	logger *slog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(store driven.KnowledgeStore, logger *slog.Logger) driving.DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{store: store, logger: logger}
}

// Upload ingests a new document. Content longer than the chunking threshold
// is stored as chunks; shorter content is kept whole.
func (s *documentService) Upload(ctx context.Context, tenantID string, req domain.UploadDocumentRequest) (*domain.KnowledgeDocument, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: document content is required", domain.ErrInvalidInput)
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	now := time.Now()
	doc := &domain.KnowledgeDocument{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Name:      name,
		Enabled:   enabled,
		Type:      req.Type,
		Category:  req.Category,
		Keywords:  req.Keywords,
		URL:       req.URL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc.Normalize()

	if len(req.Content) > chunker.Threshold {
		doc.Chunks = chunker.Split(req.Content)
	} else {
		doc.Content = req.Content
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.logger.Info("document ingested",
		"tenant_id", tenantID,
		"document_id", doc.ID,
		"name", doc.Name,
		"chunks", len(doc.Chunks),
	)
	return doc, nil
}

// Get retrieves a document by ID.
func (s *documentService) Get(ctx context.Context, tenantID, id string) (*domain.KnowledgeDocument, error) {
	return s.store.Get(ctx, tenantID, id)
}

// List retrieves documents with pagination.
func (s *documentService) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.KnowledgeDocument, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, tenantID, limit, offset)
}

// SetEnabled toggles a document in or out of search.
func (s *documentService) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	return s.store.SetEnabled(ctx, tenantID, id, enabled)
}

// Delete removes a document and its chunks.
func (s *documentService) Delete(ctx context.Context, tenantID, id string) error {
	return s.store.Delete(ctx, tenantID, id)
}

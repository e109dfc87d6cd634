package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore implements driven.KnowledgeStore using PostgreSQL.
// Chunked documents keep their fragments in document_chunks, ordered by
// chunk_index; whole-content documents keep content inline.
type KnowledgeStore struct {
	db *DB
}

// NewKnowledgeStore creates a new KnowledgeStore
func NewKnowledgeStore(db *DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// Save creates or updates a document and replaces its chunks
func (s *KnowledgeStore) Save(ctx context.Context, doc *domain.KnowledgeDocument) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO knowledge_documents (id, tenant_id, name, content, enabled, type, category, keywords, url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				content = EXCLUDED.content,
				enabled = EXCLUDED.enabled,
				type = EXCLUDED.type,
				category = EXCLUDED.category,
				keywords = EXCLUDED.keywords,
				url = EXCLUDED.url,
				updated_at = EXCLUDED.updated_at
		`

		_, err := tx.ExecContext(ctx, query,
			doc.ID,
			doc.TenantID,
			doc.Name,
			doc.Content,
			doc.Enabled,
			string(doc.Type),
			nullIfEmpty(doc.Category),
			pq.Array(doc.Keywords),
			nullIfEmpty(doc.URL),
			doc.CreatedAt,
			doc.UpdatedAt,
		)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM document_chunks WHERE document_id = $1`, doc.ID); err != nil {
			return err
		}
		for i, chunk := range doc.Chunks {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO document_chunks (document_id, chunk_index, content) VALUES ($1, $2, $3)`,
				doc.ID, i, chunk,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves a document by ID within a tenant
func (s *KnowledgeStore) Get(ctx context.Context, tenantID, id string) (*domain.KnowledgeDocument, error) {
	query := `
		SELECT id, tenant_id, name, content, enabled, type, category, keywords, url, created_at, updated_at
		FROM knowledge_documents
		WHERE tenant_id = $1 AND id = $2
	`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}

	if err := s.loadChunks(ctx, []*domain.KnowledgeDocument{doc}); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListEnabled retrieves all enabled documents for a tenant, chunks included
func (s *KnowledgeStore) ListEnabled(ctx context.Context, tenantID string) ([]*domain.KnowledgeDocument, error) {
	query := `
		SELECT id, tenant_id, name, content, enabled, type, category, keywords, url, created_at, updated_at
		FROM knowledge_documents
		WHERE tenant_id = $1 AND enabled
		ORDER BY created_at ASC
	`
	return s.queryDocuments(ctx, query, tenantID)
}

// List retrieves documents for a tenant with pagination
func (s *KnowledgeStore) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.KnowledgeDocument, error) {
	query := `
		SELECT id, tenant_id, name, content, enabled, type, category, keywords, url, created_at, updated_at
		FROM knowledge_documents
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return s.queryDocuments(ctx, query, tenantID, limit, offset)
}

// SetEnabled toggles a document's enabled flag
func (s *KnowledgeStore) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	query := `UPDATE knowledge_documents SET enabled = $1, updated_at = NOW() WHERE tenant_id = $2 AND id = $3`
	result, err := s.db.ExecContext(ctx, query, enabled, tenantID, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes a document; chunks go with it via the foreign key
func (s *KnowledgeStore) Delete(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM knowledge_documents WHERE tenant_id = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Count returns the number of documents for a tenant
func (s *KnowledgeStore) Count(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge_documents WHERE tenant_id = $1`, tenantID).Scan(&count)
	return count, err
}

func (s *KnowledgeStore) queryDocuments(ctx context.Context, query string, args ...any) ([]*domain.KnowledgeDocument, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.KnowledgeDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadChunks(ctx, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// loadChunks fills in the chunk slices for the given documents
func (s *KnowledgeStore) loadChunks(ctx context.Context, docs []*domain.KnowledgeDocument) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	byID := make(map[string]*domain.KnowledgeDocument, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		byID[doc.ID] = doc
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, content FROM document_chunks WHERE document_id = ANY($1) ORDER BY document_id, chunk_index`,
		pq.Array(ids),
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var docID, content string
		if err := rows.Scan(&docID, &content); err != nil {
			return err
		}
		if doc, ok := byID[docID]; ok {
			doc.Chunks = append(doc.Chunks, content)
		}
	}
	return rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.KnowledgeDocument, error) {
	var doc domain.KnowledgeDocument
	var docType string
	var category, url sql.NullString
	var keywords []string

	err := row.Scan(
		&doc.ID,
		&doc.TenantID,
		&doc.Name,
		&doc.Content,
		&doc.Enabled,
		&docType,
		&category,
		pq.Array(&keywords),
		&url,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.Type = domain.DocumentType(docType)
	doc.Keywords = keywords
	if category.Valid {
		doc.Category = category.String
	}
	if url.Valid {
		doc.URL = url.String
	}
	return &doc, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

package domain

import (
	"strings"
	"time"
)

// DocumentType describes where a knowledge document came from.
// It affects response phrasing only.
type DocumentType string

const (
	DocumentTypeDocument DocumentType = "document"
	DocumentTypeWebpage  DocumentType = "webpage"
)

// KnowledgeDocument is a searchable unit of tenant knowledge.
// Long content is pre-chunked at ingestion time; a document carries either
// Content or Chunks, never both.
type KnowledgeDocument struct {
	ID        string       `json:"id"`
	TenantID  string       `json:"tenant_id"`
	Name      string       `json:"name"`
	Content   string       `json:"content,omitempty"`
	Chunks    []string     `json:"chunks,omitempty"`
	Enabled   bool         `json:"enabled"`
	Type      DocumentType `json:"type"`
	Category  string       `json:"category,omitempty"`
	Keywords  []string     `json:"keywords"`
	URL       string       `json:"url,omitempty"` // source locator, never dereferenced
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Normalize fills defaults for partially specified documents so the
// relevance engine never has to deal with missing fields.
func (d *KnowledgeDocument) Normalize() {
	if strings.TrimSpace(d.Name) == "" {
		d.Name = "Unknown Document"
	}
	if d.Type == "" {
		d.Type = DocumentTypeDocument
	}
	if d.Keywords == nil {
		d.Keywords = []string{}
	}
}

// HasContent reports whether there is anything to search.
func (d *KnowledgeDocument) HasContent() bool {
	return len(d.Chunks) > 0 || strings.TrimSpace(d.Content) != ""
}

// SearchResult is one scored piece of content returned by a knowledge search.
// Results are ephemeral; they are built fresh on every call.
type SearchResult struct {
	Content    string       `json:"content"`
	Score      float64      `json:"score"`
	Source     string       `json:"source"`
	Type       DocumentType `json:"type"`
	Category   string       `json:"category,omitempty"`
	URL        string       `json:"url,omitempty"`
	ChunkIndex int          `json:"chunk_index"`
}

// KnowledgeResponse is a ready-to-send chat answer built from search results,
// or from the honest-fallback path when nothing matched.
type KnowledgeResponse struct {
	Message          string   `json:"message"`
	Confidence       float64  `json:"confidence"`
	Source           string   `json:"source,omitempty"`
	KnowledgeUsed    bool     `json:"knowledge_used"`
	KnowledgeSources []string `json:"knowledge_sources,omitempty"`
	ShouldEscalate   bool     `json:"should_escalate"`
}

// UploadDocumentRequest is the ingestion payload for a new knowledge document.
// Enabled defaults to true when omitted.
type UploadDocumentRequest struct {
	Name     string       `json:"name"`
	Content  string       `json:"content"`
	Type     DocumentType `json:"type,omitempty"`
	Category string       `json:"category,omitempty"`
	Keywords []string     `json:"keywords,omitempty"`
	URL      string       `json:"url,omitempty"`
	Enabled  *bool        `json:"enabled,omitempty"`
}

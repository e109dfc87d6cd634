package driving

import "github.com/parley-labs/parley-core/internal/core/domain"

// KnowledgeService is the relevance engine over a document collection.
// All operations are pure functions over their inputs: the full current
// collection is re-supplied on every call and no index is maintained.
type KnowledgeService interface {
	// Search returns the top maxResults most relevant pieces of content,
	// ordered by non-increasing score. Empty when nothing clears the
	// minimum-score threshold.
	Search(docs []*domain.KnowledgeDocument, query string, maxResults int) []domain.SearchResult

	// Respond builds a natural-language answer from the best search
	// results, or nil when nothing matched.
	Respond(docs []*domain.KnowledgeDocument, query string) *domain.KnowledgeResponse

	// HonestFallback builds the no-match answer: an escalation suggestion
	// for specific questions, a clarification request otherwise.
	HonestFallback(query string) *domain.KnowledgeResponse

	// SearchAndRespond is the entry point external callers should use:
	// Respond, falling back to HonestFallback. Never returns nil.
	SearchAndRespond(docs []*domain.KnowledgeDocument, query string) *domain.KnowledgeResponse
}

package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driving"
)

// Ensure knowledgeService implements KnowledgeService
var _ driving.KnowledgeService = (*knowledgeService)(nil)

const (
	// defaultMaxResults caps a search when the caller passes no limit
	defaultMaxResults = 3

	// minScore is the relevance threshold below which a candidate is dropped
	minScore = 1.0

	// Snippet extraction window geometry (characters)
	snippetWindow  = 200
	snippetStep    = 50
	snippetPadding = 50
)

// questionWords mark a query as a specific question for fallback
// classification.
var questionWords = []string{"what", "how", "when", "where", "why", "who", "which"}

// topicKeywords mark a query as touching a known support topic.
var topicKeywords = []string{
	"policy", "return", "refund", "shipping", "delivery", "payment",
	"account", "order", "product", "service", "hours", "contact",
	"support", "help", "price", "cost", "fee", "warranty", "guarantee",
}

// knowledgeService implements the KnowledgeService interface.
// It is stateless: every call receives the current full document collection.
type knowledgeService struct{}

// NewKnowledgeService creates a new KnowledgeService
func NewKnowledgeService() driving.KnowledgeService {
	return &knowledgeService{}
}

// Search scores every enabled document (or each of its chunks) against the
// query and returns the best matches, non-increasing by score. Ties keep the
// original document and chunk order.
func (s *knowledgeService) Search(docs []*domain.KnowledgeDocument, query string, maxResults int) []domain.SearchResult {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil
	}
	phrase := strings.Join(tokens, " ")

	var results []domain.SearchResult
	for _, doc := range docs {
		if doc == nil || !doc.Enabled || !doc.HasContent() {
			continue
		}
		d := *doc
		d.Normalize()

		if len(d.Chunks) > 0 {
			for i, chunk := range d.Chunks {
				score := relevance(chunk, tokens, phrase, d.Keywords)
				if score >= minScore {
					results = append(results, domain.SearchResult{
						Content:    chunk,
						Score:      score,
						Source:     d.Name,
						Type:       d.Type,
						Category:   d.Category,
						URL:        d.URL,
						ChunkIndex: i,
					})
				}
			}
			continue
		}

		score := relevance(d.Content, tokens, phrase, d.Keywords)
		if score >= minScore {
			results = append(results, domain.SearchResult{
				Content:    extractSnippet(d.Content, tokens),
				Score:      score,
				Source:     d.Name,
				Type:       d.Type,
				Category:   d.Category,
				URL:        d.URL,
				ChunkIndex: 0,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// Respond builds a natural-language answer from the best search result,
// or nil when nothing matched (the caller must apply the fallback policy).
func (s *knowledgeService) Respond(docs []*domain.KnowledgeDocument, query string) *domain.KnowledgeResponse {
	results := s.Search(docs, query, defaultMaxResults)
	if len(results) == 0 {
		return nil
	}

	best := results[0]
	sourceKind := "documentation"
	if best.Type == domain.DocumentTypeWebpage {
		sourceKind = "website"
	}

	var msg string
	if best.Source != "" {
		msg = fmt.Sprintf("Based on our %s (%s): %s", sourceKind, best.Source, best.Content)
	} else {
		msg = fmt.Sprintf("Based on our %s: %s", sourceKind, best.Content)
	}
	if len(results) > 1 {
		msg += " I also have additional related information if you'd like me to share more."
	}

	confidence := 0.5 + best.Score*0.1
	if confidence > 0.9 {
		confidence = 0.9
	}

	sources := make([]string, 0, len(results))
	for _, r := range results {
		sources = append(sources, r.Source)
	}

	return &domain.KnowledgeResponse{
		Message:          msg,
		Confidence:       confidence,
		Source:           best.Source,
		KnowledgeUsed:    true,
		KnowledgeSources: sources,
		ShouldEscalate:   false,
	}
}

// HonestFallback admits the knowledge base has no answer. Specific questions
// get an escalation suggestion; vague messages get a clarification request.
func (s *knowledgeService) HonestFallback(query string) *domain.KnowledgeResponse {
	if isSpecificQuestion(query) {
		return &domain.KnowledgeResponse{
			Message:        "I don't have specific information about that in our knowledge base. I'd recommend speaking with one of our human agents who can help you directly.",
			Confidence:     0.8,
			KnowledgeUsed:  false,
			ShouldEscalate: true,
		}
	}
	return &domain.KnowledgeResponse{
		Message:        "I want to make sure I understand what you're looking for. Could you rephrase your question or give me a bit more detail?",
		Confidence:     0.7,
		KnowledgeUsed:  false,
		ShouldEscalate: false,
	}
}

// SearchAndRespond is the single entry point for callers: a knowledge-backed
// answer when one exists, the honest fallback otherwise.
func (s *knowledgeService) SearchAndRespond(docs []*domain.KnowledgeDocument, query string) *domain.KnowledgeResponse {
	if resp := s.Respond(docs, query); resp != nil {
		return resp
	}
	return s.HonestFallback(query)
}

// tokenize lowercases the query and drops words too short to carry signal.
func tokenize(query string) []string {
	var tokens []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) > 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// relevance scores text against query tokens and curated keywords using
// literal substring counting. Raw user tokens never reach a regex engine.
func relevance(text string, tokens []string, phrase string, keywords []string) float64 {
	lower := strings.ToLower(text)

	var score float64
	for _, tok := range tokens {
		n := strings.Count(lower, tok)
		score += float64(n)
		if len(tok) > 4 && n > 0 {
			score += 0.5
		}
		for _, kw := range keywords {
			k := strings.ToLower(kw)
			if strings.Contains(k, tok) || strings.Contains(tok, k) {
				score += 2
			}
		}
	}
	if strings.Contains(lower, phrase) {
		score += 2
	}
	return score
}

// isSpecificQuestion classifies a query via case-insensitive substring checks
// against question words, a question mark, and known support topics.
func isSpecificQuestion(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(q, "?") {
		return true
	}
	for _, w := range questionWords {
		if strings.Contains(q, w) {
			return true
		}
	}
	for _, w := range topicKeywords {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// extractSnippet slides a fixed window across the content, keeps the
// window with the most token occurrences (first wins on ties), widens it,
// and trims it to whole sentences when possible.
func extractSnippet(content string, tokens []string) string {
	lower := strings.ToLower(content)

	bestStart := 0
	bestCount := -1
	for start := 0; ; start += snippetStep {
		end := start + snippetWindow
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[start:end]
		count := 0
		for _, tok := range tokens {
			count += strings.Count(window, tok)
		}
		if count > bestCount {
			bestCount = count
			bestStart = start
		}
		if end == len(lower) {
			break
		}
	}

	start := bestStart - snippetPadding
	if start < 0 {
		start = 0
	}
	end := bestStart + snippetWindow + snippetPadding
	if end > len(content) {
		end = len(content)
	}
	expanded := content[start:end]

	// Whole-sentence trim: the first and last fragments are assumed to be
	// cut off by the window edges.
	fragments := splitSentences(expanded)
	if len(fragments) > 2 {
		inner := make([]string, 0, len(fragments)-2)
		for _, f := range fragments[1 : len(fragments)-1] {
			if f = strings.TrimSpace(f); f != "" {
				inner = append(inner, f)
			}
		}
		if len(inner) > 0 {
			return strings.Join(inner, ". ") + "."
		}
	}

	snippet := strings.TrimSpace(expanded)
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}

// splitSentences splits on sentence-ending punctuation, keeping empty
// fragments so edge fragments stay positionally first and last.
func splitSentences(text string) []string {
	return strings.Split(strings.NewReplacer("!", ".", "?", ".").Replace(text), ".")
}

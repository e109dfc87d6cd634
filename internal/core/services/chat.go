package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven"
	"github.com/parley-labs/parley-core/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService handles an inbound message end to end: customer context first,
// then knowledge search, combined into a reply. It never surfaces a raw
// error to the end user; the worst case is the honest fallback message over
// a baseline context.
type chatService struct {
	knowledge driving.KnowledgeService
	contexts  driving.ContextService
	docs      driven.KnowledgeStore
	logger    *slog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	knowledge driving.KnowledgeService,
	contexts driving.ContextService,
	docs driven.KnowledgeStore,
	logger *slog.Logger,
) driving.ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{
		knowledge: knowledge,
		contexts:  contexts,
		docs:      docs,
		logger:    logger,
	}
}

// HandleMessage resolves the customer context, answers from the tenant's
// knowledge base, and escalates when either side asks for it.
func (s *chatService) HandleMessage(ctx context.Context, tenantID string, req domain.ChatRequest) (*domain.ChatReply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrInvalidInput
	}

	cc, err := s.contexts.GetContext(ctx, req.Email, req.ConversationID, false)
	if err != nil {
		return nil, err
	}

	docs, err := s.docs.ListEnabled(ctx, tenantID)
	if err != nil {
		// A broken document store must not break the chat; answer from
		// an empty collection and let the fallback path take over.
		s.logger.Warn("knowledge store unavailable, answering without documents",
			"tenant_id", tenantID,
			"error", err,
		)
		docs = nil
	}

	resp := s.knowledge.SearchAndRespond(docs, req.Message)

	escalate := resp.ShouldEscalate
	if cc.Insights.RiskLevel == domain.RiskHigh {
		escalate = true
	}

	return &domain.ChatReply{
		Message:          resp.Message,
		Confidence:       resp.Confidence,
		Source:           resp.Source,
		KnowledgeUsed:    resp.KnowledgeUsed,
		KnowledgeSources: resp.KnowledgeSources,
		ShouldEscalate:   escalate,
		Context:          s.contexts.Summary(cc),
	}, nil
}

package driving

import (
	"context"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// ChatService handles an inbound end-user message: customer context first,
// then knowledge search, combined into a single reply.
type ChatService interface {
	HandleMessage(ctx context.Context, tenantID string, req domain.ChatRequest) (*domain.ChatReply, error)
}

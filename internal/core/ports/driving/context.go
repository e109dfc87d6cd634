package driving

import (
	"context"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// ContextService aggregates commerce and helpdesk data into a cached
// per-customer context with derived insights.
type ContextService interface {
	// GetContext returns the customer context for (email, conversationID),
	// serving a cached entry when fresh unless forceRefresh is set.
	// A failed fetch yields a default context and is never cached, so the
	// next call retries. The error return is reserved for context
	// cancellation; fetch failures are absorbed.
	GetContext(ctx context.Context, email, conversationID string, forceRefresh bool) (*domain.CustomerContext, error)

	// UpdateContext shallow-merges updates onto the current context,
	// recomputes insights and rewrites the cache entry with a fresh
	// timestamp.
	UpdateContext(ctx context.Context, email, conversationID string, update domain.ContextUpdate) (*domain.CustomerContext, error)

	// NeedsRefresh reports whether the next GetContext would fetch.
	NeedsRefresh(ctx context.Context, email, conversationID string) bool

	// ClearContext removes exactly one cached entry.
	ClearContext(ctx context.Context, email, conversationID string) error

	// ClearAll removes every cached entry.
	ClearAll(ctx context.Context) error

	// Summary projects a context into its agent-facing display form.
	Summary(c *domain.CustomerContext) *domain.ContextSummary

	// SweepExpired removes entries idle longer than the sweep age and
	// returns how many were removed.
	SweepExpired(ctx context.Context) (int, error)
}

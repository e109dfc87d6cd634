package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven"
	"github.com/parley-labs/parley-core/internal/core/ports/driving"
)

// Ensure contextService implements ContextService
var _ driving.ContextService = (*contextService)(nil)

const (
	// DefaultContextTTL is the freshness window for cached contexts
	DefaultContextTTL = 5 * time.Minute

	// DefaultSweepAge is how long an entry may sit idle before the janitor
	// removes it. Much larger than the TTL so sweeping never changes
	// serve-vs-recompute behaviour.
	DefaultSweepAge = 30 * time.Minute
)

// contextService implements the ContextService interface.
// It owns merging, insight derivation and caching; the fetchers own all
// network concerns.
type contextService struct {
	commerce driven.CommerceFetcher
	helpdesk driven.HelpdeskFetcher
	store    driven.ContextStore
	logger   *slog.Logger
	ttl      time.Duration
	sweepAge time.Duration
	now      func() time.Time
}

// ContextServiceConfig holds configuration for the context service.
// Commerce and Helpdesk may be nil when the deployment has no such
// integration; the corresponding context slice then stays empty.
type ContextServiceConfig struct {
	Commerce driven.CommerceFetcher
	Helpdesk driven.HelpdeskFetcher
	Store    driven.ContextStore
	Logger   *slog.Logger
	TTL      time.Duration
	SweepAge time.Duration
}

// NewContextService creates a new ContextService
func NewContextService(cfg ContextServiceConfig) driving.ContextService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultContextTTL
	}
	sweepAge := cfg.SweepAge
	if sweepAge <= 0 {
		sweepAge = DefaultSweepAge
	}
	return &contextService{
		commerce: cfg.Commerce,
		helpdesk: cfg.Helpdesk,
		store:    cfg.Store,
		logger:   logger,
		ttl:      ttl,
		sweepAge: sweepAge,
		now:      time.Now,
	}
}

// GetContext serves the cached context when fresh, otherwise fetches,
// enhances and caches a new one. A failed fetch yields an uncached default
// context so the next call retries.
func (s *contextService) GetContext(ctx context.Context, email, conversationID string, forceRefresh bool) (*domain.CustomerContext, error) {
	key := domain.ContextKey(email, conversationID)
	now := s.now()

	if !forceRefresh {
		entry, err := s.store.Get(ctx, key)
		if err == nil && entry.FreshAt(now, s.ttl) {
			return entry.Data, nil
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("context cache read failed", "key", key, "error", err)
		}
	}

	cc, err := s.fetch(ctx, email, conversationID)
	if err != nil {
		s.logger.Warn("context fetch failed, serving default context",
			"email", email,
			"conversation_id", conversationID,
			"error", err,
		)
		return domain.NewDefaultContext(email, conversationID, now), nil
	}

	if err := s.store.Put(ctx, key, &domain.ContextEntry{Data: cc, Timestamp: now}); err != nil {
		s.logger.Warn("context cache write failed", "key", key, "error", err)
	}
	return cc, nil
}

// fetch pulls both provider slices and derives insights. An error from
// either provider fails the whole fetch; a nil slice just means the
// customer has no record there.
func (s *contextService) fetch(ctx context.Context, email, conversationID string) (*domain.CustomerContext, error) {
	var commerce *domain.CommerceData
	if s.commerce != nil && email != "" {
		c, err := s.commerce.FetchCustomer(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("commerce fetch: %w", err)
		}
		commerce = c
	}

	var helpdesk *domain.HelpdeskData
	if s.helpdesk != nil && (email != "" || conversationID != "") {
		h, err := s.helpdesk.FetchCustomer(ctx, email, conversationID)
		if err != nil {
			return nil, fmt.Errorf("helpdesk fetch: %w", err)
		}
		helpdesk = h
	}

	cc := &domain.CustomerContext{
		Email:          email,
		ConversationID: conversationID,
		Commerce:       commerce,
		Helpdesk:       helpdesk,
		LastUpdated:    s.now(),
	}
	cc.RecomputeInsights()
	return cc, nil
}

// UpdateContext shallow-merges the update onto the current context and
// rewrites the cache entry with a fresh timestamp, regardless of TTL.
func (s *contextService) UpdateContext(ctx context.Context, email, conversationID string, update domain.ContextUpdate) (*domain.CustomerContext, error) {
	cc, err := s.GetContext(ctx, email, conversationID, false)
	if err != nil {
		return nil, err
	}

	if update.Commerce != nil {
		cc.Commerce = update.Commerce
	}
	if update.Helpdesk != nil {
		cc.Helpdesk = update.Helpdesk
	}
	cc.RecomputeInsights()

	now := s.now()
	cc.LastUpdated = now

	key := domain.ContextKey(email, conversationID)
	if err := s.store.Put(ctx, key, &domain.ContextEntry{Data: cc, Timestamp: now}); err != nil {
		return nil, fmt.Errorf("store updated context: %w", err)
	}
	return cc, nil
}

// NeedsRefresh reports whether no fresh entry exists for the key.
func (s *contextService) NeedsRefresh(ctx context.Context, email, conversationID string) bool {
	entry, err := s.store.Get(ctx, domain.ContextKey(email, conversationID))
	if err != nil {
		return true
	}
	return !entry.FreshAt(s.now(), s.ttl)
}

// ClearContext removes exactly one cached entry.
func (s *contextService) ClearContext(ctx context.Context, email, conversationID string) error {
	return s.store.Delete(ctx, domain.ContextKey(email, conversationID))
}

// ClearAll removes every cached entry.
func (s *contextService) ClearAll(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}

// Summary projects a context into its display form. Safe on contexts with
// no provider data; the output is then baseline-only.
func (s *contextService) Summary(cc *domain.CustomerContext) *domain.ContextSummary {
	if cc == nil {
		return nil
	}

	sum := &domain.ContextSummary{
		Email:            cc.Email,
		Tier:             cc.Insights.CustomerTier,
		Risk:             cc.Insights.RiskLevel,
		ResponseTime:     cc.Insights.ResponseTime,
		SuggestedActions: cc.Insights.SuggestedActions,
		LastUpdated:      cc.LastUpdated,
	}

	if cc.Commerce != nil && cc.Commerce.Customer != nil {
		sum.CustomerName = cc.Commerce.Customer.DisplayName()
		cs := &domain.CommerceSummary{
			TotalSpent: cc.Commerce.Customer.TotalSpent,
			OrderCount: cc.Commerce.Customer.OrdersCount,
		}
		for i, o := range cc.Commerce.Orders {
			if i >= 3 {
				break
			}
			cs.RecentOrders = append(cs.RecentOrders, domain.OrderSummary{
				Name:      o.Name,
				Total:     o.TotalPrice,
				Status:    o.DisplayStatus(),
				CreatedAt: o.CreatedAt,
			})
		}
		sum.Commerce = cs
	}

	if cc.Helpdesk != nil {
		if sum.CustomerName == "" && cc.Helpdesk.Customer != nil {
			sum.CustomerName = cc.Helpdesk.Customer.Name
		}
		sum.Helpdesk = &domain.HelpdeskSummary{
			Conversations:    cc.Helpdesk.Insights.TotalConversations,
			Satisfaction:     cc.Helpdesk.Insights.Satisfaction(),
			LastContact:      cc.Helpdesk.Insights.LastContact,
			PreferredChannel: cc.Helpdesk.Insights.PreferredChannel,
		}
	}

	return sum
}

// SweepExpired removes entries idle longer than the sweep age.
func (s *contextService) SweepExpired(ctx context.Context) (int, error) {
	return s.store.DeleteOlderThan(ctx, s.now().Add(-s.sweepAge))
}

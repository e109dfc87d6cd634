package driven

import (
	"context"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// CommerceFetcher retrieves a customer's commerce record and recent orders
// from the commerce provider. A (nil, nil) return means the customer has no
// commerce record; an error means the provider could not be consulted.
type CommerceFetcher interface {
	FetchCustomer(ctx context.Context, email string) (*domain.CommerceData, error)
}

// HelpdeskFetcher retrieves a customer's helpdesk record and conversation
// insights. Same nil/error semantics as CommerceFetcher.
type HelpdeskFetcher interface {
	FetchCustomer(ctx context.Context, email, conversationID string) (*domain.HelpdeskData, error)
}

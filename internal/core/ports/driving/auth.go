package driving

import (
	"context"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// AuthService exchanges tenant credentials for JWTs and validates them.
type AuthService interface {
	// IssueToken verifies the tenant API key and returns a signed JWT.
	IssueToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResponse, error)

	// ValidateToken validates a JWT and confirms the tenant is still
	// enabled.
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

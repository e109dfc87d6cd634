package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven"
	"github.com/parley-labs/parley-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// DefaultTokenTTL is the lifetime of an issued tenant JWT
const DefaultTokenTTL = 15 * time.Minute

// authService implements the AuthService interface.
// Tokens are stateless; revocation happens by disabling the tenant.
type authService struct {
	tenants  driven.TenantStore
	adapter  driven.AuthAdapter
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(tenants driven.TenantStore, adapter driven.AuthAdapter) driving.AuthService {
	return &authService{
		tenants:  tenants,
		adapter:  adapter,
		tokenTTL: DefaultTokenTTL,
		now:      time.Now,
	}
}

// IssueToken verifies the tenant API key and returns a signed JWT.
// Unknown tenants and wrong keys both map to ErrInvalidCredentials so the
// response does not reveal which part was wrong.
func (s *authService) IssueToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResponse, error) {
	tenant, err := s.tenants.Get(ctx, req.TenantID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load tenant: %w", err)
	}

	if !tenant.Enabled {
		return nil, domain.ErrTenantDisabled
	}
	if !s.adapter.VerifyAPIKey(req.APIKey, tenant.APIKeyHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	token, err := s.adapter.GenerateToken(&domain.TokenClaims{
		TenantID:  tenant.ID,
		Name:      tenant.Name,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken validates a JWT and confirms the tenant is still enabled.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.adapter.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenants.Get(ctx, claims.TenantID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !tenant.Enabled {
		return nil, domain.ErrTenantDisabled
	}

	return claims, nil
}

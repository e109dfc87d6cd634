package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven/mocks"
)

// fakeAuthAdapter implements driven.AuthAdapter without real crypto so the
// service tests stay fast and deterministic.
type fakeAuthAdapter struct {
	validateErr error
}

func (f *fakeAuthAdapter) HashAPIKey(key string) (string, error) {
	return "hash:" + key, nil
}

func (f *fakeAuthAdapter) VerifyAPIKey(key, hash string) bool {
	return hash == "hash:"+key
}

func (f *fakeAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	return fmt.Sprintf("token:%s:%d", claims.TenantID, claims.ExpiresAt), nil
}

func (f *fakeAuthAdapter) ValidateToken(token string) (*domain.TokenClaims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "token" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{TenantID: parts[1]}, nil
}

func seedTenant(t *testing.T, store *mocks.MockTenantStore, adapter *fakeAuthAdapter, enabled bool) *domain.Tenant {
	t.Helper()
	hash, err := adapter.HashAPIKey("secret-key")
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}
	tenant := &domain.Tenant{
		ID:         "tenant-1",
		Name:       "Acme",
		APIKeyHash: hash,
		Enabled:    enabled,
	}
	if err := store.Save(context.Background(), tenant); err != nil {
		t.Fatalf("save tenant: %v", err)
	}
	return tenant
}

func TestAuthService_IssueToken(t *testing.T) {
	store := mocks.NewMockTenantStore()
	adapter := &fakeAuthAdapter{}
	seedTenant(t, store, adapter, true)

	svc := NewAuthService(store, adapter).(*authService)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	resp, err := svc.IssueToken(context.Background(), domain.TokenRequest{
		TenantID: "tenant-1",
		APIKey:   "secret-key",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if want := issued.Add(DefaultTokenTTL); !resp.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, resp.ExpiresAt)
	}
}

func TestAuthService_IssueToken_WrongKey(t *testing.T) {
	store := mocks.NewMockTenantStore()
	adapter := &fakeAuthAdapter{}
	seedTenant(t, store, adapter, true)
	svc := NewAuthService(store, adapter)

	_, err := svc.IssueToken(context.Background(), domain.TokenRequest{
		TenantID: "tenant-1",
		APIKey:   "wrong-key",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_IssueToken_UnknownTenant(t *testing.T) {
	svc := NewAuthService(mocks.NewMockTenantStore(), &fakeAuthAdapter{})

	_, err := svc.IssueToken(context.Background(), domain.TokenRequest{
		TenantID: "ghost",
		APIKey:   "whatever",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown tenant must look like bad credentials, got %v", err)
	}
}

func TestAuthService_IssueToken_DisabledTenant(t *testing.T) {
	store := mocks.NewMockTenantStore()
	adapter := &fakeAuthAdapter{}
	seedTenant(t, store, adapter, false)
	svc := NewAuthService(store, adapter)

	_, err := svc.IssueToken(context.Background(), domain.TokenRequest{
		TenantID: "tenant-1",
		APIKey:   "secret-key",
	})
	if !errors.Is(err, domain.ErrTenantDisabled) {
		t.Errorf("expected ErrTenantDisabled, got %v", err)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	store := mocks.NewMockTenantStore()
	adapter := &fakeAuthAdapter{}
	tenant := seedTenant(t, store, adapter, true)
	svc := NewAuthService(store, adapter)

	claims, err := svc.ValidateToken(context.Background(), "token:tenant-1:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.TenantID != tenant.ID {
		t.Errorf("expected tenant %s, got %s", tenant.ID, claims.TenantID)
	}
}

func TestAuthService_ValidateToken_DisabledTenant(t *testing.T) {
	store := mocks.NewMockTenantStore()
	adapter := &fakeAuthAdapter{}
	tenant := seedTenant(t, store, adapter, true)
	svc := NewAuthService(store, adapter)

	tenant.Enabled = false
	if err := store.Save(context.Background(), tenant); err != nil {
		t.Fatalf("save tenant: %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), "token:tenant-1:0"); !errors.Is(err, domain.ErrTenantDisabled) {
		t.Errorf("expected ErrTenantDisabled, got %v", err)
	}
}

func TestAuthService_ValidateToken_AdapterError(t *testing.T) {
	store := mocks.NewMockTenantStore()
	adapter := &fakeAuthAdapter{validateErr: domain.ErrTokenExpired}
	seedTenant(t, store, adapter, true)
	svc := NewAuthService(store, adapter)

	if _, err := svc.ValidateToken(context.Background(), "anything"); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// Low bcrypt cost keeps the tests fast
func testAdapter() *Adapter {
	return NewAdapterWithCost("test-secret", bcrypt.MinCost)
}

func TestHashAPIKey(t *testing.T) {
	adapter := testAdapter()

	hash, err := adapter.HashAPIKey("my-api-key")
	if err != nil {
		t.Fatalf("failed to hash key: %v", err)
	}
	if hash == "" || hash == "my-api-key" {
		t.Errorf("unexpected hash %q", hash)
	}

	// Salted: same input, different hashes
	hash2, _ := adapter.HashAPIKey("my-api-key")
	if hash == hash2 {
		t.Error("expected different hashes for the same key")
	}
}

func TestVerifyAPIKey(t *testing.T) {
	adapter := testAdapter()
	hash, _ := adapter.HashAPIKey("my-api-key")

	if !adapter.VerifyAPIKey("my-api-key", hash) {
		t.Error("expected verification to succeed for the right key")
	}
	if adapter.VerifyAPIKey("wrong-key", hash) {
		t.Error("expected verification to fail for the wrong key")
	}
	if adapter.VerifyAPIKey("my-api-key", "not-a-hash") {
		t.Error("expected verification to fail for a malformed hash")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	adapter := testAdapter()
	now := time.Now()

	token, err := adapter.GenerateToken(&domain.TokenClaims{
		TenantID:  "tenant-1",
		Name:      "Acme",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(15 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := adapter.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.TenantID != "tenant-1" {
		t.Errorf("expected tenant-1, got %s", claims.TenantID)
	}
	if claims.Name != "Acme" {
		t.Errorf("expected Acme, got %s", claims.Name)
	}
	if claims.ExpiresAt != now.Add(15*time.Minute).Unix() {
		t.Errorf("expiry not round-tripped: %d", claims.ExpiresAt)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	adapter := testAdapter()
	now := time.Now()

	token, err := adapter.GenerateToken(&domain.TokenClaims{
		TenantID:  "tenant-1",
		IssuedAt:  now.Add(-time.Hour).Unix(),
		ExpiresAt: now.Add(-30 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := adapter.ValidateToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	adapter := testAdapter()
	other := NewAdapterWithCost("different-secret", bcrypt.MinCost)
	now := time.Now()

	token, err := adapter.GenerateToken(&domain.TokenClaims{
		TenantID:  "tenant-1",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(15 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	adapter := testAdapter()

	if _, err := adapter.ValidateToken("not.a.token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

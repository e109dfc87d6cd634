package driven

import "github.com/parley-labs/parley-core/internal/core/domain"

// AuthAdapter handles API-key hashing and JWT operations
type AuthAdapter interface {
	// HashAPIKey generates a bcrypt hash from a plaintext API key
	HashAPIKey(key string) (string, error)

	// VerifyAPIKey checks if an API key matches a bcrypt hash
	VerifyAPIKey(key, hash string) bool

	// GenerateToken creates a signed JWT from domain claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ValidateToken parses and validates a JWT, returning its claims.
	// Returns domain.ErrTokenExpired or domain.ErrTokenInvalid on failure.
	ValidateToken(token string) (*domain.TokenClaims, error)
}

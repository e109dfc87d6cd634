package domain

import "time"

// Tenant is an onboarded workspace. Each tenant owns its knowledge documents
// and authenticates API calls with a hashed API key.
type Tenant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	APIKeyHash string    `json:"-"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TokenClaims are the claims carried in a tenant JWT.
type TokenClaims struct {
	TenantID  string `json:"tenant_id"`
	Name      string `json:"name"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// TokenRequest exchanges tenant credentials for a JWT.
type TokenRequest struct {
	TenantID string `json:"tenant_id"`
	APIKey   string `json:"api_key"`
}

// TokenResponse carries a freshly issued JWT.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

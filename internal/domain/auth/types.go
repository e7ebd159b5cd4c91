package auth

// Package auth contains domain-level types for authentication.
// It is pure and free of framework/adapter concerns.

import "time"

// Identity represents the authenticated principal returned by an identity
// provider. Adapters map provider-specific payloads into this shape. The
// gateway never creates or mutates principals, only references them.
type Identity struct {
	// UserID is the stable subject identifier (e.g., Identity Platform localId).
	UserID string
	// Email is the address the principal authenticated with.
	Email string
}

// Claims is the structured content of a session token. Tokens are
// self-contained and never persisted server-side; a validated token yields
// exactly these fields.
type Claims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	TenantID  string    `json:"tenant_id"`
	ClientID  string    `json:"client_id"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// ExpiresIn returns the remaining lifetime of the claims relative to now,
// floored at zero.
func (c Claims) ExpiresIn(now time.Time) time.Duration {
	if remaining := c.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

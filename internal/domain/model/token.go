package model

import "time"

// TokenType is the authorization scheme for issued tokens.
const TokenType = "Bearer"

// SignedToken is a freshly issued, self-contained signed credential.
// The signing secret never appears in the token or in this struct.
type SignedToken struct {
	// Token is the compact serialized form presented back by clients.
	Token string
	// IssuedAt is the iat claim.
	IssuedAt time.Time
	// ExpiresAt is the exp claim, strictly greater than IssuedAt.
	ExpiresAt time.Time
}

// ExpiresIn returns the configured lifetime of the token in whole seconds.
func (t SignedToken) ExpiresIn() int64 {
	return int64(t.ExpiresAt.Sub(t.IssuedAt) / time.Second)
}

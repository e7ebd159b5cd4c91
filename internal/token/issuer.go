package token

// Package token implements issuance and validation of self-contained HS256
// session tokens. Both operations are pure CPU work: the issuer and validator
// hold their configuration and never touch the network or storage.

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ostia-cloud/auth-gateway/config"
	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	"github.com/ostia-cloud/auth-gateway/internal/domain/model"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
)

// signingMethod is fixed. Tokens presented with any other algorithm are
// rejected rather than negotiated.
var signingMethod = jwt.SigningMethodHS256

// sessionClaims is the wire shape of session token claims.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
	ClientID string `json:"client_id"`
}

// Issuer mints signed session tokens with a fixed lifetime window.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
	now      func() time.Time
}

// IssuerOptions groups dependencies for NewIssuer.
type IssuerOptions struct {
	Config config.TokenConfig
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewIssuer constructs an Issuer, failing fast when the signing secret or
// claim identities are not configured. There is deliberately no fallback
// secret: an unconfigured deployment must not issue verifiable tokens.
func NewIssuer(opts IssuerOptions) (*Issuer, error) {
	cfg := opts.Config
	if cfg.Secret == "" {
		return nil, apperrors.Configuration("token signing secret is not configured")
	}
	if cfg.Issuer == "" {
		return nil, apperrors.Configuration("token issuer is not configured")
	}
	if cfg.Audience == "" {
		return nil, apperrors.Configuration("token audience is not configured")
	}
	if cfg.Lifetime <= 0 {
		return nil, apperrors.Configurationf("token lifetime must be positive, got %s", cfg.Lifetime)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Issuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: cfg.Lifetime,
		now:      now,
	}, nil
}

// Issue builds and signs a session token scoped to the given tenant and
// client. Expiry is always issued-at plus the configured lifetime.
func (i *Issuer) Issue(identity domainauth.Identity, tenantID, clientID string) (model.SignedToken, error) {
	issuedAt := i.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.lifetime)

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:    identity.Email,
		TenantID: tenantID,
		ClientID: clientID,
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return model.SignedToken{}, apperrors.Wrap(err, apperrors.ErrCodeConfiguration, "sign session token")
	}

	return model.SignedToken{
		Token:     signed,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Lifetime reports the configured token lifetime.
func (i *Issuer) Lifetime() time.Duration {
	return i.lifetime
}

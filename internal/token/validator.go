package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ostia-cloud/auth-gateway/config"
	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
)

const bearerPrefix = "Bearer "

// Validator verifies session tokens against the configured key, issuer, and
// audience, and extracts their claims. It performs no I/O and is safe for
// concurrent use.
type Validator struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

// ValidatorOptions groups dependencies for NewValidator.
type ValidatorOptions struct {
	Config config.TokenConfig
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewValidator constructs a Validator with the same fail-fast configuration
// rules as NewIssuer.
func NewValidator(opts ValidatorOptions) (*Validator, error) {
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

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Validator{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      now,
	}, nil
}

// ValidateAuthorizationHeader extracts the bearer credential from an
// Authorization header value and validates it. A missing header or a
// non-bearer scheme is a token_missing failure.
func (v *Validator) ValidateAuthorizationHeader(header string) (domainauth.Claims, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeTokenMissing, "missing Authorization header")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeTokenMissing, "Authorization header is not a bearer credential")
	}
	return v.Validate(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
}

// Validate verifies the signature, issuer, audience, and expiry of a
// presented token and returns its claims. The signature is checked before
// any claim is trusted; expiry must be strictly in the future.
func (v *Validator) Validate(raw string) (domainauth.Claims, error) {
	if raw == "" {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeTokenMissing, "empty bearer token")
	}

	// Claims validation is done explicitly below so expiry failures stay
	// distinct from signature/identity failures.
	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return domainauth.Claims{}, mapJWTError(err)
	}

	if parsed.Issuer != v.issuer {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeTokenInvalid, "token issuer mismatch")
	}
	if !audienceContains(parsed.Audience, v.audience) {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeTokenInvalid, "token audience mismatch")
	}
	if parsed.ExpiresAt == nil || parsed.IssuedAt == nil {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeTokenInvalid, "token is missing iat/exp claims")
	}

	if !parsed.ExpiresAt.Time.After(v.now()) {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeTokenExpired, "token is expired")
	}

	return domainauth.Claims{
		Subject:   parsed.Subject,
		Email:     parsed.Email,
		TenantID:  parsed.TenantID,
		ClientID:  parsed.ClientID,
		IssuedAt:  parsed.IssuedAt.Time.UTC(),
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperrors.Wrap(err, apperrors.ErrCodeTokenMalformed, "token is malformed")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return apperrors.Wrap(err, apperrors.ErrCodeTokenInvalid, "token signature is invalid")
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.Wrap(err, apperrors.ErrCodeTokenInvalid, "token algorithm is invalid")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeTokenInvalid, "token is invalid")
	}
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

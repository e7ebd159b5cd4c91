package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters, internal/data, and internal/token;
// orchestration in internal/service.

import (
	"context"

	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	"github.com/ostia-cloud/auth-gateway/internal/domain/model"
)

// CredentialVerifier delegates password verification to an identity provider.
// Every login calls Verify at most once; results are never cached.
type CredentialVerifier interface {
	// Verify checks the email/password pair and returns the authenticated
	// identity. Provider rejections of any kind surface as an
	// invalid_credentials error; provider unreachability or missing provider
	// configuration surfaces as a configuration error.
	Verify(ctx context.Context, email, password string) (domainauth.Identity, error)
}

// MembershipStore reads the durable user-tenant membership relation.
type MembershipStore interface {
	// IsMember reports whether the subject is provisioned for the tenant.
	// Storage failures are infrastructure errors, never membership answers.
	IsMember(ctx context.Context, userID, tenantID string) (bool, error)
}

// ClientStore resolves and lazily provisions clients scoped to a tenant.
type ClientStore interface {
	// Get looks up a client by id within the tenant scope.
	Get(ctx context.Context, tenantID, clientID string) (*model.Client, error)

	// CreateAuto atomically persists a new client with a generated unique id
	// under the tenant. Concurrent calls must each receive a distinct id;
	// uniqueness is enforced at the storage layer.
	CreateAuto(ctx context.Context, tenantID string) (*model.Client, error)
}

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(identity domainauth.Identity, tenantID, clientID string) (model.SignedToken, error)
}

// TokenValidator verifies presented tokens and extracts their claims.
// Validation is a pure local computation with no network or storage access.
type TokenValidator interface {
	// Validate checks a compact serialized token.
	Validate(raw string) (domainauth.Claims, error)

	// ValidateAuthorizationHeader extracts the bearer credential from an
	// Authorization header value and validates it.
	ValidateAuthorizationHeader(header string) (domainauth.Claims, error)
}

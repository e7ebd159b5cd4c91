package service

import (
	"context"
	"errors"
	"time"

	"github.com/ostia-cloud/auth-gateway/internal/data"
	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	"github.com/ostia-cloud/auth-gateway/internal/domain/model"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
	"github.com/ostia-cloud/auth-gateway/internal/observability/statsd"
	"github.com/ostia-cloud/auth-gateway/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier    ports.CredentialVerifier
	Memberships ports.MembershipStore
	Clients     ports.ClientStore
	Issuer      ports.TokenIssuer
	Validator   ports.TokenValidator
	// Metrics is optional; a nil sink drops all emissions.
	Metrics statsd.Sink
}

// AuthService orchestrates the login and introspection flows. A login runs
// its stages strictly in order, each at most once: credential verification,
// tenant membership, client resolution, token issuance. The first failing
// stage terminates the call with its error kind.
type AuthService struct {
	verifier    ports.CredentialVerifier
	memberships ports.MembershipStore
	clients     ports.ClientStore
	issuer      ports.TokenIssuer
	validator   ports.TokenValidator
	metrics     statsd.Sink
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Verifier == nil {
		return nil, errors.New("auth service: credential verifier is required")
	}
	if opts.Memberships == nil {
		return nil, errors.New("auth service: membership store is required")
	}
	if opts.Clients == nil {
		return nil, errors.New("auth service: client store is required")
	}
	if opts.Issuer == nil {
		return nil, errors.New("auth service: token issuer is required")
	}
	if opts.Validator == nil {
		return nil, errors.New("auth service: token validator is required")
	}
	return &AuthService{
		verifier:    opts.Verifier,
		memberships: opts.Memberships,
		clients:     opts.Clients,
		issuer:      opts.Issuer,
		validator:   opts.Validator,
		metrics:     opts.Metrics,
	}, nil
}

// LoginInput carries the validated fields of a login request. ClientID nil
// requests lazy provisioning; a non-nil value must already be registered.
type LoginInput struct {
	TenantID string
	Email    string
	Password string
	ClientID *string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token    model.SignedToken
	TenantID string
	ClientID string
	UserID   string
}

// Login authenticates the credentials, confirms tenant membership, resolves
// or lazily provisions the client, and issues a tenant-scoped session token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	start := time.Now()

	result, err := s.login(ctx, input)
	s.countLogin(err, time.Since(start))
	return result, err
}

func (s *AuthService) login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	identity, err := s.verifier.Verify(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	// Membership is checked against the durable store, never inferred from
	// the provider response: a principal can hold a valid account without
	// being provisioned for this tenant.
	isMember, err := s.memberships.IsMember(ctx, identity.UserID, input.TenantID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.UserNotProvisioned("user is not provisioned for this tenant")
	}

	clientID, err := s.resolveClient(ctx, input.TenantID, input.ClientID)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(identity, input.TenantID, clientID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		TenantID: input.TenantID,
		ClientID: clientID,
		UserID:   identity.UserID,
	}, nil
}

// resolveClient looks up a caller-supplied client id within the tenant scope
// or lazily provisions a new client when none was supplied. A named client
// that does not exist is never created implicitly.
func (s *AuthService) resolveClient(ctx context.Context, tenantID string, clientID *string) (string, error) {
	if clientID == nil {
		client, err := s.clients.CreateAuto(ctx, tenantID)
		if err != nil {
			return "", err
		}
		return client.ClientID, nil
	}

	if *clientID == "" {
		return "", apperrors.ValidationField("client_id", "client_id must not be empty when supplied")
	}

	client, err := s.clients.Get(ctx, tenantID, *clientID)
	if err != nil {
		if errors.Is(err, data.ErrClientNotFound) {
			return "", apperrors.ClientNotProvisioned("client is not provisioned for this tenant")
		}
		return "", err
	}
	return client.ClientID, nil
}

// Introspect validates a presented Authorization header and returns the
// token's claims. No network or storage access occurs.
func (s *AuthService) Introspect(header string) (domainauth.Claims, error) {
	claims, err := s.validator.ValidateAuthorizationHeader(header)
	s.countIntrospection(err)
	return claims, err
}

func (s *AuthService) countLogin(err error, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count("login", 1, map[string]string{"result": resultTag(err)})
	s.metrics.Timing("login.duration", elapsed, nil)
}

func (s *AuthService) countIntrospection(err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count("introspection", 1, map[string]string{"result": resultTag(err)})
}

// resultTag reduces an error to a low-cardinality metric tag.
func resultTag(err error) string {
	if err == nil {
		return "ok"
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	return "error"
}

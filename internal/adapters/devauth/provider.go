package devauth

// Package devauth provides a simple, config-driven CredentialVerifier for
// local development. It never talks to a real identity provider.

import (
	"context"
	"crypto/subtle"
	"errors"

	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
	"github.com/ostia-cloud/auth-gateway/internal/ports"
)

// Config controls the dev verifier behavior. All fields are required.
type Config struct {
	UserID   string
	Email    string
	Password string
}

// Provider implements ports.CredentialVerifier for local development.
// It accepts exactly the configured email/password pair and rejects
// everything else the same way the real provider would.
type Provider struct {
	identity domainauth.Identity
	password string
}

var _ ports.CredentialVerifier = (*Provider)(nil)

// NewProvider constructs a dev verifier from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("dev auth: Password is required")
	}
	return &Provider{
		identity: domainauth.Identity{
			UserID: cfg.UserID,
			Email:  cfg.Email,
		},
		password: cfg.Password,
	}, nil
}

// Verify returns the configured identity when the email/password pair
// matches, and a normalized invalid_credentials failure otherwise.
func (p *Provider) Verify(_ context.Context, email, password string) (domainauth.Identity, error) {
	if email == "" || password == "" {
		return domainauth.Identity{}, apperrors.InvalidCredentials("email and password are required")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(p.identity.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(p.password)) == 1
	if !emailOK || !passOK {
		return domainauth.Identity{}, apperrors.InvalidCredentials("invalid credentials")
	}

	return p.identity, nil
}

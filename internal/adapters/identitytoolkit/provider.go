package identitytoolkit

// Package identitytoolkit verifies end-user passwords against Google
// Identity Platform via the Identity Toolkit REST API.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
	"github.com/ostia-cloud/auth-gateway/internal/ports"
)

const signInPath = "/accounts:signInWithPassword"

// Provider implements the CredentialVerifier interface against Identity Platform.
type Provider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

var _ ports.CredentialVerifier = (*Provider)(nil)

// ProviderConfig holds configuration for the Identity Platform provider.
type ProviderConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	// HTTPClient overrides the default client, for tests.
	HTTPClient *http.Client
}

// NewProvider creates a new Identity Platform provider. A missing API key is
// a configuration error here so a misconfigured deployment fails at startup
// rather than on the first login.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperrors.Configuration("identity provider API key is not configured")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, apperrors.Configuration("identity provider endpoint is not configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Provider{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		endpoint:   strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/"),
		httpClient: httpClient,
	}, nil
}

// signInRequest is the Identity Toolkit signInWithPassword request body.
type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// signInResponse carries the fields the gateway needs from a successful
// verification. The provider's own ID token is ignored; the gateway issues
// its own tenant-scoped token.
type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

// Verify checks the email/password pair against Identity Platform.
//
// Any HTTP response other than 200 (wrong password, unknown account,
// disabled account) is normalized to a single invalid_credentials failure so
// callers cannot distinguish which stage rejected them. Transport failures
// and timeouts are configuration errors: the upstream being unreachable is
// not attributable to the caller's credentials.
func (p *Provider) Verify(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if email == "" || password == "" {
		return domainauth.Identity{}, apperrors.InvalidCredentials("email and password are required")
	}

	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode sign-in request")
	}

	url := fmt.Sprintf("%s%s?key=%s", p.endpoint, signInPath, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build sign-in request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domainauth.Identity{}, mapTransportError(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return domainauth.Identity{}, apperrors.InvalidCredentials("invalid credentials")
	}

	var payload signInResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return domainauth.Identity{}, apperrors.Wrap(decodeErr, apperrors.ErrCodeConfiguration, "decode identity provider response")
	}
	if payload.LocalID == "" {
		return domainauth.Identity{}, apperrors.Configuration("identity provider response is missing a subject identifier")
	}

	identityEmail := payload.Email
	if identityEmail == "" {
		identityEmail = email
	}

	return domainauth.Identity{
		UserID: payload.LocalID,
		Email:  identityEmail,
	}, nil
}

// mapTransportError classifies request failures. Context cancellation keeps
// its own code; everything else (DNS, refused connection, client timeout) is
// an upstream-unavailable configuration error.
func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "identity provider call canceled")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeConfiguration, "identity provider unreachable")
}

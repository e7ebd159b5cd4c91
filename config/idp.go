package config

import (
	"fmt"
	"strings"
	"time"
)

// IdPMode represents the identity provider backing credential verification.
type IdPMode string

const (
	// IdPModeIdentityPlatform verifies passwords against Google Identity Platform.
	IdPModeIdentityPlatform IdPMode = "identity-platform"
	// IdPModeMock uses a static development identity (for development only).
	IdPModeMock IdPMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for IdPMode.
func (m *IdPMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "identity-platform", "mock":
		*m = IdPMode(v)
		return nil
	default:
		return fmt.Errorf("invalid IdPMode: %q (valid options: identity-platform, mock)", v)
	}
}

// MockIdPConfig controls the mock/dev identity used when Mode=mock.
type MockIdPConfig struct {
	UserID   string `env:"USER_ID"  envDefault:"dev-user"`
	Email    string `env:"EMAIL"    envDefault:"dev@example.com"`
	Password string `env:"PASSWORD" envDefault:"devpass"`
}

// IdPConfig groups identity provider configuration.
//
// APIKey intentionally has no default: a deployment running in
// identity-platform mode without a key must fail startup rather than
// silently accept one that cannot verify anything.
type IdPConfig struct {
	// Mode determines which credential verifier to use.
	Mode IdPMode `env:"MODE" envDefault:"identity-platform"`

	// APIKey is the Identity Platform web API key.
	APIKey string `env:"API_KEY"`

	// Endpoint is the Identity Toolkit REST base URL. Overridable for tests.
	Endpoint string `env:"ENDPOINT" envDefault:"https://identitytoolkit.googleapis.com/v1"`

	// Timeout bounds each outbound verification call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// Mock configuration (used when Mode=mock).
	Mock MockIdPConfig `envPrefix:"MOCK_"`
}

// Sanitize applies guardrails to identity provider configuration values.
func (c *IdPConfig) Sanitize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}

package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - idp.go: Identity provider configuration
//   - token.go: Session token signing configuration
//   - database.go: Database configuration
//   - http.go: HTTP server configuration
//   - observability.go: Metrics configuration
type AppConfig struct {
	// ProjectID identifies the cloud project this deployment belongs to.
	// Reported by the health endpoint.
	ProjectID string `env:"GCP_PROJECT" envDefault:"ostia-478108"`

	// IsDev controls development mode behavior (dev seeding, mock auth).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// DevSeed enables seeding of a development tenant/user/client on startup.
	// Only honored when IsDev is also true.
	DevSeed bool `env:"DEV_SEED" envDefault:"false"`

	// Identity provider configuration
	IdP IdPConfig `envPrefix:"IDP_"`

	// Session token configuration
	Token TokenConfig `envPrefix:"JWT_"`

	// Database configuration
	Postgres DBConfig `envPrefix:"DB_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.IdP.Sanitize()
	c.Token.Sanitize()
	c.HTTP.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

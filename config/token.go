package config

import (
	"strings"
	"time"
)

// TokenConfig contains session token signing configuration.
//
// Secret intentionally has no default. An earlier deployment shipped with a
// fixed placeholder secret for unconfigured environments, which makes every
// issued token forgeable; startup validation now rejects an empty secret
// outright (see bootstrap.ValidateConfig).
type TokenConfig struct {
	// Secret is the symmetric HMAC signing secret. Required.
	Secret string `env:"SECRET"`

	// Issuer is the fixed service identity embedded in the iss claim.
	Issuer string `env:"ISSUER" envDefault:"https://auth.ostia.cloud"`

	// Audience is the fixed client-population identifier embedded in the aud claim.
	Audience string `env:"AUDIENCE" envDefault:"ostia-clients"`

	// Lifetime is the validity window of issued tokens.
	Lifetime time.Duration `env:"LIFETIME" envDefault:"1h"`
}

// Sanitize applies guardrails to token configuration values.
func (c *TokenConfig) Sanitize() {
	c.Issuer = strings.TrimSpace(c.Issuer)
	c.Audience = strings.TrimSpace(c.Audience)
	if c.Lifetime < time.Minute {
		c.Lifetime = time.Hour
	}
}

package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ostia-cloud/auth-gateway/config"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateConfig rejects configurations that must never reach serving.
//
// The signing secret check is deliberate policy: an earlier deployment fell
// back to a fixed placeholder secret when unset, which made every issued
// token forgeable. Startup now fails instead.
func ValidateConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if cfg.Token.Secret == "" {
		return errors.New("JWT_SECRET is required; refusing to start with an unsigned-token configuration")
	}
	if cfg.IdP.Mode == config.IdPModeIdentityPlatform && cfg.IdP.APIKey == "" {
		return errors.New("IDP_API_KEY is required when IDP_MODE=identity-platform")
	}
	if cfg.IdP.Mode == config.IdPModeMock && !cfg.IsDev {
		return errors.New("IDP_MODE=mock is only allowed in development mode (DEV=true)")
	}
	if cfg.Postgres.Password == "" {
		return errors.New("DB_PASSWORD is required")
	}
	return nil
}

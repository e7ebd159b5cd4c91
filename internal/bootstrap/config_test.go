package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostia-cloud/auth-gateway/config"
)

func validTestConfig() config.AppConfig {
	return config.AppConfig{
		IdP: config.IdPConfig{
			Mode:   config.IdPModeIdentityPlatform,
			APIKey: "key",
		},
		Token: config.TokenConfig{
			Secret:   "s3cret",
			Issuer:   "https://auth.ostia.cloud",
			Audience: "ostia-clients",
		},
		Postgres: config.DBConfig{
			Password: "pw",
		},
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	cfg := validTestConfig()
	assert.NoError(t, ValidateConfig(&cfg))
}

func TestValidateConfig_NilConfig(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))
}

func TestValidateConfig_MissingSecretRefusesStartup(t *testing.T) {
	cfg := validTestConfig()
	cfg.Token.Secret = ""

	err := ValidateConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestValidateConfig_MissingAPIKey(t *testing.T) {
	cfg := validTestConfig()
	cfg.IdP.APIKey = ""

	err := ValidateConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDP_API_KEY is required")
}

func TestValidateConfig_MockModeRequiresDev(t *testing.T) {
	cfg := validTestConfig()
	cfg.IdP.Mode = config.IdPModeMock
	cfg.IdP.APIKey = ""

	err := ValidateConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only allowed in development mode")

	cfg.IsDev = true
	assert.NoError(t, ValidateConfig(&cfg))
}

func TestValidateConfig_MissingDBPassword(t *testing.T) {
	cfg := validTestConfig()
	cfg.Postgres.Password = ""

	err := ValidateConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD is required")
}

func TestLoadConfig_MissingDotEnvTolerated(t *testing.T) {
	// Required env for a clean parse; LoadConfig must not fail just because
	// no .env file exists in the working directory.
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Token.Secret)
	assert.Equal(t, "ostia-478108", cfg.ProjectID)
}

package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ostia-cloud/auth-gateway/config"
	"github.com/ostia-cloud/auth-gateway/internal/adapters/devauth"
	"github.com/ostia-cloud/auth-gateway/internal/adapters/identitytoolkit"
	"github.com/ostia-cloud/auth-gateway/internal/data"
	"github.com/ostia-cloud/auth-gateway/internal/observability/statsd"
	"github.com/ostia-cloud/auth-gateway/internal/ports"
	"github.com/ostia-cloud/auth-gateway/internal/service"
	"github.com/ostia-cloud/auth-gateway/internal/token"
)

// ServiceDeps contains everything NewServices needs to assemble the service graph.
type ServiceDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	Logger *slog.Logger
}

// ServiceContainer holds the constructed services and shared infrastructure.
type ServiceContainer struct {
	Auth    *service.AuthService
	Metrics *statsd.Client
}

// NewServices wires adapters, repositories, and the token pair into the
// auth service. All configuration is read once here; components receive
// their dependencies explicitly and never consult the environment.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config

	verifier, err := newVerifier(cfg)
	if err != nil {
		return nil, err
	}

	issuer, err := token.NewIssuer(token.IssuerOptions{Config: cfg.Token})
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}
	validator, err := token.NewValidator(token.ValidatorOptions{Config: cfg.Token})
	if err != nil {
		return nil, fmt.Errorf("token validator: %w", err)
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.Prefix,
		Logger:  deps.Logger,
		GlobalTags: map[string]string{
			"service": "ostia-auth",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("statsd client: %w", err)
	}

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Verifier:    verifier,
		Memberships: data.NewMembershipRepo(deps.DB),
		Clients:     data.NewClientRepo(deps.DB),
		Issuer:      issuer,
		Validator:   validator,
		Metrics:     metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	return &ServiceContainer{
		Auth:    authSvc,
		Metrics: metrics,
	}, nil
}

// newVerifier selects the credential verifier for the configured IdP mode.
//
//nolint:ireturn // the verifier port is the deliberate seam between modes.
func newVerifier(cfg *config.AppConfig) (ports.CredentialVerifier, error) {
	switch cfg.IdP.Mode {
	case config.IdPModeMock:
		verifier, err := devauth.NewProvider(devauth.Config{
			UserID:   cfg.IdP.Mock.UserID,
			Email:    cfg.IdP.Mock.Email,
			Password: cfg.IdP.Mock.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("dev verifier: %w", err)
		}
		return verifier, nil
	default:
		verifier, err := identitytoolkit.NewProvider(identitytoolkit.ProviderConfig{
			APIKey:   cfg.IdP.APIKey,
			Endpoint: cfg.IdP.Endpoint,
			Timeout:  cfg.IdP.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("identity platform verifier: %w", err)
		}
		return verifier, nil
	}
}

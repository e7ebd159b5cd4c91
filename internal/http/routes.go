package httpx

import (
	"log/slog"
	"net/http"

	"github.com/ostia-cloud/auth-gateway/internal/service"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "ostia-auth"

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      *service.AuthService
	ProjectID string
	Logger    *slog.Logger // Logger for request errors (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: logger}
	healthHandlers := &HealthHandlers{Service: ServiceName, Project: services.ProjectID}

	requireAuth := RequireAuth(services.Auth, logger)

	mux.Handle("POST /login", http.HandlerFunc(authHandlers.Login))
	mux.Handle("GET /me", requireAuth(http.HandlerFunc(authHandlers.Me)))

	mux.Handle("GET /health", http.HandlerFunc(healthHandlers.Health))
	mux.Handle("HEAD /health", http.HandlerFunc(healthHandlers.Health))
	// Kept for probes configured against the conventional path.
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandlers.Health))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandlers.Health))

	return mux
}

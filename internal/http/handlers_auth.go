// Package httpx provides HTTP handlers and middleware for the auth gateway API.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ostia-cloud/auth-gateway/internal/domain/model"
	"github.com/ostia-cloud/auth-gateway/internal/service"
)

// AuthHandlers provides HTTP handlers for login and introspection.
type AuthHandlers struct {
	Svc    *service.AuthService
	Logger *slog.Logger
}

// Login handles POST /login: verifies credentials, confirms tenant
// membership, resolves the client scope, and returns a signed session token.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, r, h.Logger, err)
		return
	}

	result, err := h.Svc.Login(r.Context(), service.LoginInput{
		TenantID: req.TenantID,
		Email:    req.Email,
		Password: req.Password,
		ClientID: req.ClientID,
	})
	if err != nil {
		RenderAppError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, model.LoginResponse{
		AccessToken: result.Token.Token,
		TokenType:   model.TokenType,
		ExpiresIn:   result.Token.ExpiresIn(),
		TenantID:    result.TenantID,
		ClientID:    result.ClientID,
		UserID:      result.UserID,
	})
}

// Me handles GET /me: returns the claims of the bearer token validated by
// the RequireAuth middleware.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		// Route misconfiguration: Me must be mounted behind RequireAuth.
		RenderAppError(w, r, h.Logger, errors.New("claims missing from request context"))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"sub":       claims.Subject,
		"email":     claims.Email,
		"tenant_id": claims.TenantID,
		"client_id": claims.ClientID,
		"iat":       claims.IssuedAt.Unix(),
		"exp":       claims.ExpiresAt.Unix(),
	})
}

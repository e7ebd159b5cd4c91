package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// withClaims returns a request whose context carries the validated claims.
func withClaims(r *http.Request, claims domainauth.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims))
}

// ClaimsFromContext retrieves validated token claims stored by RequireAuth.
// The second return is false when the request did not pass through the
// middleware.
func ClaimsFromContext(ctx context.Context) (domainauth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(domainauth.Claims)
	return claims, ok
}

package httpx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
)

// stubIntrospector implements IntrospectionService for middleware tests.
type stubIntrospector struct {
	claims domainauth.Claims
	err    error

	gotHeader string
}

func (s *stubIntrospector) Introspect(header string) (domainauth.Claims, error) {
	s.gotHeader = header
	return s.claims, s.err
}

func TestRequireAuth_ValidToken(t *testing.T) {
	introspector := &stubIntrospector{
		claims: domainauth.Claims{Subject: "user-1", TenantID: "T1"},
	}

	var seen domainauth.Claims
	var seenOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, seenOK = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	handler := RequireAuth(introspector, slog.New(slog.DiscardHandler))(next)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Bearer some-token", introspector.gotHeader)
	require.True(t, seenOK)
	assert.Equal(t, "user-1", seen.Subject)
	assert.Equal(t, "T1", seen.TenantID)
}

func TestRequireAuth_RejectsBeforeHandler(t *testing.T) {
	introspector := &stubIntrospector{
		err: apperrors.New(apperrors.ErrCodeTokenExpired, "token is expired"),
	}

	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	handler := RequireAuth(introspector, slog.New(slog.DiscardHandler))(next)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "token_expired")
}

func TestClaimsFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ClaimsFromContext(req.Context())
	assert.False(t, ok)
}

func TestLogging_CapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Logging(logger)(next)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/login"`)
}

func TestRecover_PanicBecomes500(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := Recover(logger)(next)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "boom")
}

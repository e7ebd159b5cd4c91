package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostia-cloud/auth-gateway/config"
	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	"github.com/ostia-cloud/auth-gateway/internal/domain/model"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
	authmocks "github.com/ostia-cloud/auth-gateway/internal/mocks/auth"
	"github.com/ostia-cloud/auth-gateway/internal/service"
	"github.com/ostia-cloud/auth-gateway/internal/testutil"
	"github.com/ostia-cloud/auth-gateway/internal/token"
)

const (
	testTenantID = "T1"
	testEmail    = "stub.user@example.com"
	testPassword = "stub-password"
)

type routerFixture struct {
	handler     http.Handler
	verifier    *authmocks.StubVerifier
	memberships *authmocks.MemoryMembershipStore
	clients     *authmocks.MemoryClientStore
}

// newRouterFixture builds the full router over in-memory stores and a real
// token pair, so handler tests exercise the same wiring as production.
func newRouterFixture(t *testing.T, opts ...func(*service.AuthServiceOptions)) *routerFixture {
	t.Helper()

	tokenCfg := config.TokenConfig{
		Secret:   "handler-test-secret",
		Issuer:   "https://auth.ostia.cloud",
		Audience: "ostia-clients",
		Lifetime: time.Hour,
	}
	issuer, err := token.NewIssuer(token.IssuerOptions{Config: tokenCfg})
	require.NoError(t, err)
	validator, err := token.NewValidator(token.ValidatorOptions{Config: tokenCfg})
	require.NoError(t, err)

	f := &routerFixture{
		verifier:    authmocks.NewStubVerifier(),
		memberships: authmocks.NewMemoryMembershipStore(),
		clients:     authmocks.NewMemoryClientStore(),
	}
	f.memberships.Add(f.verifier.Identity.UserID, testTenantID)

	svcOpts := service.AuthServiceOptions{
		Verifier:    f.verifier,
		Memberships: f.memberships,
		Clients:     f.clients,
		Issuer:      issuer,
		Validator:   validator,
	}
	for _, opt := range opts {
		opt(&svcOpts)
	}

	svc, err := service.NewAuthService(svcOpts)
	require.NoError(t, err)

	f.handler = NewRouter(RouterServices{
		Auth:      svc,
		ProjectID: "test-project",
		Logger:    slog.New(slog.DiscardHandler),
	})
	return f
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func loginBody(clientID *string) string {
	req := map[string]any{
		"tenant_id": testTenantID,
		"email":     testEmail,
		"password":  testPassword,
	}
	if clientID != nil {
		req["client_id"] = *clientID
	}
	b, _ := json.Marshal(req)
	return string(b)
}

func TestLogin_Success_LazyClient(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(t, f.handler, http.MethodPost, "/login", loginBody(nil), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "Bearer", body["token_type"])
	assert.EqualValues(t, 3600, body["expires_in"])
	assert.Equal(t, testTenantID, body["tenant_id"])
	assert.NotEmpty(t, body["client_id"])
	assert.Equal(t, f.verifier.Identity.UserID, body["user_id"])

	// The lazily provisioned client is persisted.
	assert.Equal(t, 1, f.clients.Len())
}

func TestLogin_Success_NamedClient(t *testing.T) {
	f := newRouterFixture(t)
	f.clients.Put(model.Client{TenantID: testTenantID, ClientID: "C-known", Name: "Reporting client"})

	rec := doJSON(t, f.handler, http.MethodPost, "/login", loginBody(testutil.StringPtr("C-known")), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "C-known", body["client_id"])
	// No extra client is created for a named login.
	assert.Equal(t, 1, f.clients.Len())
}

func TestLogin_DBProfileToleratedAndIgnored(t *testing.T) {
	f := newRouterFixture(t)

	body := `{"tenant_id":"T1","email":"` + testEmail + `","password":"` + testPassword + `","db_profile":"analytics"}`
	rec := doJSON(t, f.handler, http.MethodPost, "/login", body, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLogin_UnknownFieldRejected(t *testing.T) {
	f := newRouterFixture(t)

	body := `{"tenant_id":"T1","email":"a@b.c","password":"pw","surprise":true}`
	rec := doJSON(t, f.handler, http.MethodPost, "/login", body, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeBody(t, rec)["error"])
}

func TestLogin_MalformedJSON(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(t, f.handler, http.MethodPost, "/login", "{not json", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeBody(t, rec)["error"])
}

func TestLogin_MissingFields(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing tenant_id", `{"email":"a@b.c","password":"pw"}`},
		{"missing email", `{"tenant_id":"T1","password":"pw"}`},
		{"missing password", `{"tenant_id":"T1","email":"a@b.c"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, f.handler, http.MethodPost, "/login", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation", decodeBody(t, rec)["error"])
		})
	}
}

func TestLogin_EmptyClientID(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(t, f.handler, http.MethodPost, "/login", loginBody(testutil.StringPtr("")), nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeBody(t, rec)["error"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newRouterFixture(t)
	f.verifier.VerifyFunc = func(ctx context.Context, _, _ string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.InvalidCredentials("invalid credentials")
	}

	body := `{"tenant_id":"T1","email":"` + testEmail + `","password":"wrong"}`
	rec := doJSON(t, f.handler, http.MethodPost, "/login", body, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", decodeBody(t, rec)["error"])
}

func TestLogin_UserNotProvisioned(t *testing.T) {
	f := newRouterFixture(t)

	body := `{"tenant_id":"T2","email":"` + testEmail + `","password":"` + testPassword + `"}`
	rec := doJSON(t, f.handler, http.MethodPost, "/login", body, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "user_not_provisioned", decodeBody(t, rec)["error"])
}

func TestLogin_ClientNotProvisioned(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(t, f.handler, http.MethodPost, "/login", loginBody(testutil.StringPtr("C-missing")), nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "client_not_provisioned", decodeBody(t, rec)["error"])
}

func TestLogin_ConfigurationErrorHidesDetail(t *testing.T) {
	f := newRouterFixture(t, func(o *service.AuthServiceOptions) {
		issuer := authmocks.NewStaticIssuer()
		issuer.Err = apperrors.Configuration("signing secret rotated away")
		o.Issuer = issuer
	})

	rec := doJSON(t, f.handler, http.MethodPost, "/login", loginBody(nil), nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "internal_error", body["error"])
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "signing secret")
}

func TestMe(t *testing.T) {
	f := newRouterFixture(t)

	// Log in for a real token.
	login := doJSON(t, f.handler, http.MethodPost, "/login", loginBody(nil), nil)
	require.Equal(t, http.StatusOK, login.Code)
	accessToken, _ := decodeBody(t, login)["access_token"].(string)
	require.NotEmpty(t, accessToken)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)
	rec := doJSON(t, f.handler, http.MethodGet, "/me", "", header)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, f.verifier.Identity.UserID, body["sub"])
	assert.Equal(t, f.verifier.Identity.Email, body["email"])
	assert.Equal(t, testTenantID, body["tenant_id"])
	assert.NotEmpty(t, body["client_id"])

	iat, iatOK := body["iat"].(float64)
	exp, expOK := body["exp"].(float64)
	require.True(t, iatOK)
	require.True(t, expOK)
	assert.EqualValues(t, 3600, exp-iat)
}

func TestMe_MissingToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(t, f.handler, http.MethodGet, "/me", "", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token_missing", decodeBody(t, rec)["error"])
}

func TestMe_WrongScheme(t *testing.T) {
	f := newRouterFixture(t)

	header := http.Header{}
	header.Set("Authorization", "Basic dXNlcjpwdw==")
	rec := doJSON(t, f.handler, http.MethodGet, "/me", "", header)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token_missing", decodeBody(t, rec)["error"])
}

func TestMe_MalformedToken(t *testing.T) {
	f := newRouterFixture(t)

	header := http.Header{}
	header.Set("Authorization", "Bearer not-a-token")
	rec := doJSON(t, f.handler, http.MethodGet, "/me", "", header)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token_malformed", decodeBody(t, rec)["error"])
}

func TestMe_ExpiredToken(t *testing.T) {
	f := newRouterFixture(t)

	// Mint with a backdated clock so the token is already past expiry.
	backdated, err := token.NewIssuer(token.IssuerOptions{
		Config: config.TokenConfig{
			Secret:   "handler-test-secret",
			Issuer:   "https://auth.ostia.cloud",
			Audience: "ostia-clients",
			Lifetime: time.Hour,
		},
		Now: testutil.FixedTimeFunc(time.Now().Add(-2 * time.Hour)),
	})
	require.NoError(t, err)

	signed, err := backdated.Issue(f.verifier.Identity, testTenantID, "C-x")
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+signed.Token)
	rec := doJSON(t, f.handler, http.MethodGet, "/me", "", header)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token_expired", decodeBody(t, rec)["error"])
}

func TestHealth(t *testing.T) {
	f := newRouterFixture(t)

	for _, path := range []string{"/health", "/healthz"} {
		rec := doJSON(t, f.handler, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, ServiceName, body["service"])
		assert.Equal(t, "test-project", body["project"])
	}
}

func TestHealth_Head(t *testing.T) {
	f := newRouterFixture(t)

	rec := doJSON(t, f.handler, http.MethodHead, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

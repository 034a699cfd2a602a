package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adstack/meta-ads-agent/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestUnifiedAuthMiddlewareAPIKey(t *testing.T) {
	store := auth.NewAPIKeyStore()
	store.AddKey("secret-key", auth.FullAccessPrincipal("ops"))

	var principal *auth.Principal
	handler := UnifiedAuthMiddleware("unused", store, discardLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ = auth.GetPrincipalFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	req.Header.Set("X-API-Key", "secret-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "ops", principal.PrincipalID)
}

func TestUnifiedAuthMiddlewareEnforcesOperationPermissions(t *testing.T) {
	store := auth.NewAPIKeyStore()
	store.AddKey("readonly-key", auth.ReadOnlyPrincipal("viewer"))

	handler := UnifiedAuthMiddleware("unused", store, discardLogger())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/create_campaign", strings.NewReader(`{}`))
	req.Header.Set("X-API-Key", "readonly-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "INSUFFICIENT_PERMISSIONS")

	// The same key still reaches read endpoints.
	req = httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	req.Header.Set("X-API-Key", "readonly-key")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnifiedAuthMiddlewareEnforcesJWTPermissions(t *testing.T) {
	const secret = "test-secret"

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jwt-viewer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	claims.Permissions.Campaigns = []string{"read"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	handler := UnifiedAuthMiddleware(secret, auth.NewAPIKeyStore(), discardLogger())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/pause_campaign", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "INSUFFICIENT_PERMISSIONS")
}

func TestUnifiedAuthMiddlewareRejectsUnknownKey(t *testing.T) {
	handler := UnifiedAuthMiddleware("unused", auth.NewAPIKeyStore(), discardLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_INVALID")
}

func TestUnifiedAuthMiddlewareRequiresCredentials(t *testing.T) {
	handler := UnifiedAuthMiddleware("unused", auth.NewAPIKeyStore(), discardLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_REQUIRED")
}

func TestUnifiedAuthMiddlewareJWT(t *testing.T) {
	const secret = "test-secret"

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jwt-client",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	claims.Permissions.Campaigns = []string{"read", "write"}
	claims.Permissions.Accounts = []string{"read"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	var principal *auth.Principal
	handler := UnifiedAuthMiddleware(secret, auth.NewAPIKeyStore(), discardLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ = auth.GetPrincipalFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.True(t, principal.HasPermission("campaigns", auth.PermissionWrite))
	assert.False(t, principal.HasPermission("accounts", auth.PermissionWrite))
}

func TestUnifiedAuthMiddlewareRejectsExpiredJWT(t *testing.T) {
	const secret = "test-secret"

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jwt-client",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	handler := UnifiedAuthMiddleware(secret, auth.NewAPIKeyStore(), discardLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExcludePathsMiddleware(t *testing.T) {
	authMw := UnifiedAuthMiddleware("unused", auth.NewAPIKeyStore(), discardLogger())
	handler := ExcludePathsMiddleware(authMw, []string{"/health"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	store := NewRateLimiterStore(rate.Limit(1), 2, time.Minute)
	handler := RateLimitMiddleware(store)(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client gets its own bucket.
	req = httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLimitBodySize(t *testing.T) {
	handler := LimitBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/create_campaign", strings.NewReader("tiny"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/create_campaign", strings.NewReader("well over the configured limit"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

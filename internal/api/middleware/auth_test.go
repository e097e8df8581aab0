package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlot/dealership-api/internal/config"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/service/auth"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-key-thats-long-enough-for-hmac",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func tokenFor(t *testing.T, svc auth.JWTService, role domain.EmployeeRole) string {
	t.Helper()

	token, err := svc.GenerateToken(context.Background(), "EMP1", role)
	require.NoError(t, err)
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	mw := NewAuthMiddleware(svc)

	t.Run("rejects missing header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		mw.Authenticate(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects non-bearer header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		mw.Authenticate(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()

		mw.Authenticate(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passes valid token and exposes claims", func(t *testing.T) {
		t.Parallel()

		var gotClaims *auth.Claims
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r)
			require.True(t, ok)
			gotClaims = claims
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, domain.RoleSales))
		rec := httptest.NewRecorder()

		mw.Authenticate(inner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, "EMP1", gotClaims.EmployeeID)
		assert.Equal(t, domain.RoleSales, gotClaims.Role)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	mw := NewAuthMiddleware(svc)

	protected := func(roles ...domain.EmployeeRole) http.Handler {
		return mw.Authenticate(mw.RequireRole(roles...)(okHandler()))
	}

	t.Run("allows matching role", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, domain.RoleAdmin))
		rec := httptest.NewRecorder()

		protected(domain.RoleAdmin).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("allows any of several roles", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, domain.RoleManager))
		rec := httptest.NewRecorder()

		protected(domain.RoleAdmin, domain.RoleManager).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbids non-matching role", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, domain.RoleSales))
		rec := httptest.NewRecorder()

		protected(domain.RoleAdmin).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("requires authentication before authorization", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()

		protected(domain.RoleAdmin).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

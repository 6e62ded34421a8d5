package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(t *testing.T) security.TokenManager {
	t.Helper()
	return security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
}

func TestAuthMiddleware_Require(t *testing.T) {
	tokens := newTestTokens(t)
	mw := NewAuthMiddleware(tokens)

	var gotClaims *security.UserClaims
	handler := mw.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = ClaimsFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(2, "jane@test.com", "vendor")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/my/payouts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, int32(2), gotClaims.UserID)
		assert.Equal(t, "vendor", gotClaims.Role)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/my/payouts", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/my/payouts", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tokens := newTestTokens(t)
	mw := NewAuthMiddleware(tokens)

	handler := mw.RequireRole(domain.UserRoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("AdminAllowed", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(1, "admin@test.com", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/payouts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("VendorForbidden", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(2, "jane@test.com", "vendor")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/payouts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartcart-be/internal/auth"
	"smartcart-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, called *bool) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("MissingHeader", func(t *testing.T) {
		var called bool
		handler := RequireAuth(okHandler(t, &called))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authentication required", errorMessage(t, rec))
		assert.False(t, called)
	})

	t.Run("BadToken", func(t *testing.T) {
		var called bool
		handler := RequireAuth(okHandler(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", errorMessage(t, rec))
		assert.False(t, called)
	})

	t.Run("ValidTokenPopulatesContext", func(t *testing.T) {
		token, err := auth.GenerateToken(7, "jane@example.com", utils.RoleCustomer)
		require.NoError(t, err)

		handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, int64(7), id)
			assert.Equal(t, utils.RoleCustomer, utils.GetUserRoleFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	serve := func(t *testing.T, role, tokenRole string) (*httptest.ResponseRecorder, *bool) {
		t.Helper()
		var called bool
		handler := RequireAuth(RequireRole(role)(okHandler(t, &called)))

		token, err := auth.GenerateToken(7, "jane@example.com", tokenRole)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec, &called
	}

	t.Run("CustomerBlockedFromAdminRoute", func(t *testing.T) {
		rec, called := serve(t, utils.RoleAdmin, utils.RoleCustomer)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Admin access required", errorMessage(t, rec))
		assert.False(t, *called)
	})

	t.Run("AdminBlockedFromCustomerRoute", func(t *testing.T) {
		rec, called := serve(t, utils.RoleCustomer, utils.RoleAdmin)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Customer access required", errorMessage(t, rec))
		assert.False(t, *called)
	})

	t.Run("MatchingRolePasses", func(t *testing.T) {
		rec, called := serve(t, utils.RoleAdmin, utils.RoleAdmin)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
	})
}

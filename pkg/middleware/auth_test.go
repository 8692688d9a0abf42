package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
	"github.com/MohamedTawfiq30/dmorder/pkg/middleware"
)

func protectedHandler(t *testing.T, wantOwner string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantOwner, auth.OwnerID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthAcceptsValidBearerToken(t *testing.T) {
	token, err := auth.GenerateToken("owner-1", "seller@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middleware.Auth(protectedHandler(t, "owner-1")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	middleware.Auth(protectedHandler(t, "")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		middleware.Auth(protectedHandler(t, "")).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken("owner-1", "seller@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	rec := httptest.NewRecorder()

	middleware.Auth(protectedHandler(t, "")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

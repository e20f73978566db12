package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mw "creditdesk/internal/api/middlewares"
	"creditdesk/internal/auth"
	"creditdesk/internal/models"
	"creditdesk/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoIdentity(t *testing.T) (http.Handler, *models.Identity) {
	t.Helper()
	var seen models.Identity
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := utils.IdentityFromContext(r.Context())
		require.True(t, ok)
		seen = identity
		w.WriteHeader(http.StatusOK)
	})
	return handler, &seen
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	token, err := auth.SignToken("u-9", "Nina", models.RoleAdmin)
	require.NoError(t, err)

	next, seen := echoIdentity(t)
	handler := mw.JWTMiddleware(next)

	req := httptest.NewRequest(http.MethodGet, "/transaction/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Identity{ID: "u-9", Role: models.RoleAdmin, Name: "Nina"}, *seen)
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	handler := mw.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run without a session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/transaction/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_GarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	handler := mw.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/transaction/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewaresExcludePaths(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.MiddlewaresExcludePaths(mw.JWTMiddleware, "/health")(next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/transaction/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

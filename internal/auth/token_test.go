package auth_test

import (
	"testing"
	"time"

	"creditdesk/internal/auth"
	"creditdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestSignAndResolveToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token, err := auth.SignToken("u-1", "Alice", models.RoleUser)
	require.NoError(t, err)

	identity, err := auth.ResolveToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.ID)
	assert.Equal(t, models.RoleUser, identity.Role)
	assert.Equal(t, "Alice", identity.Name)
}

func TestResolveToken_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	_, err := auth.ResolveToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestResolveToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	token, err := auth.SignToken("u-1", "", models.RoleUser)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "a-different-secret")
	_, err = auth.ResolveToken(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestResolveToken_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	claims := jwt.MapClaims{
		"id":   "u-1",
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.ResolveToken(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestResolveToken_UnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	claims := jwt.MapClaims{
		"id":   "u-1",
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.ResolveToken(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestDecodeToken_IgnoresSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	token, err := auth.SignToken("u-2", "Bob", models.RoleAdmin)
	require.NoError(t, err)

	// Decoding needs no secret; it is display-only.
	t.Setenv("JWT_SECRET", "")
	identity, err := auth.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-2", identity.ID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
}

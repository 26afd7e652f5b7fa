package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

)

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	token, ok = BearerToken("bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = BearerToken("Basic dXNlcjpwYXNz")
	assert.False(t, ok)

	_, ok = BearerToken("")
	assert.False(t, ok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := GenerateToken(42, "prov@example.com", "PROVIDER", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "prov@example.com", claims.Email)
	assert.Equal(t, "PROVIDER", claims.Role)
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := GenerateToken(1, "a@b.c", "ADMIN", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	signed, err := GenerateToken(1, "a@b.c", "STAFF", time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = VerifyToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthority_Issue(t *testing.T) {
	secret := "test-secret"
	authority := NewJWTAuthority(secret)

	token, err := authority.Issue("admin-1", "admin@club.example", "admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, "admin@club.example", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTAuthority_Verify_roundTrip(t *testing.T) {
	authority := NewJWTAuthority("test-secret")

	token, err := authority.Issue("admin-1", "admin@club.example", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := authority.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "admin@club.example", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTAuthority_Verify_wrongSecret(t *testing.T) {
	token, err := NewJWTAuthority("secret-a").Issue("admin-1", "a@b.com", "admin", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTAuthority("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWTAuthority_Verify_expired(t *testing.T) {
	authority := NewJWTAuthority("test-secret")

	token, err := authority.Issue("admin-1", "a@b.com", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = authority.Verify(token)
	assert.Error(t, err)
}

func TestJWTAuthority_Verify_garbage(t *testing.T) {
	_, err := NewJWTAuthority("test-secret").Verify("not-a-token")
	assert.Error(t, err)
}

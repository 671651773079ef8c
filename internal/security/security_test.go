package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, string(hash), "$argon2id$v=19$")

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	// Two hashes of the same password differ by salt.
	other, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", []byte("not-a-hash"))
	assert.Error(t, err)

	_, err = VerifyPassword("anything", []byte("$bcrypt$v=19$t=3,m=65536,p=2$aa$bb"))
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateAccessToken(secret, "user-1", "sess-1", "dev-1", "architect", time.Minute)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "dev-1", claims.DeviceID)
	assert.Equal(t, "architect", claims.Role)

	_, err = ParseAccessToken(token, "other-secret")
	assert.Error(t, err)
}

func TestAccessTokenExpiry(t *testing.T) {
	token, err := GenerateAccessToken("s", "u", "sess", "dev", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "s")
	assert.Error(t, err)
}

func TestRefreshTokenHash(t *testing.T) {
	token, hash, err := GenerateRefreshToken(0)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Len(t, hash, 32)
	assert.Equal(t, hash, HashRefreshToken(token))

	other, _, err := GenerateRefreshToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

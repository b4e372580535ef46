package utils

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Residentia-pg/residentia-backend/storage"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	storage.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { storage.Redis = nil })
	return mr
}

func TestTokenPairRoundTrip(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	mr := setupRedis(t)

	pair, err := CreateTokenPair(42, "owner")
	require.NoError(t, err)

	claims, err := ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ID)
	assert.Equal(t, "owner", claims.Role)

	// refresh token lands on the allowlist with the role as its value
	role, err := mr.Get(string(pair.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, "owner", role)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")

	_, err := ParseAccessToken([]byte("not.a.token"))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessTokenRejectsForgedSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	setupRedis(t)

	pair, err := CreateTokenPair(42, "owner")
	require.NoError(t, err)

	t.Setenv("ACCESS_TOKEN_SECRET", "rotated-secret")
	_, err = ParseAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenAllowlistExpiry(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	mr := setupRedis(t)

	pair, err := CreateTokenPair(42, "client")
	require.NoError(t, err)

	mr.FastForward(RefreshTokenTTL + 10*time.Minute)
	_, err = mr.Get(string(pair.RefreshToken))
	assert.Error(t, err)
}

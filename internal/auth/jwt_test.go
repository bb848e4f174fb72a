package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	token, err := NewToken(42, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := UserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestExpiredToken(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	token, err := NewToken(42, secret, -time.Minute)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewToken(42, []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, []byte("secret-b"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	t.Parallel()

	_, err := UserIDFromToken("not-a-token", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

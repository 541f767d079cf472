package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndDecodeToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.CreateToken("550e8400-e29b-41d4-a716-446655440000", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDecodeToken_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.CreateTokenWithTTL("550e8400-e29b-41d4-a716-446655440000", "user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = m.DecodeToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeToken_WrongSecret(t *testing.T) {
	minter := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := minter.CreateToken("550e8400-e29b-41d4-a716-446655440000", "user@example.com")
	require.NoError(t, err)

	_, err = verifier.DecodeToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeToken_Malformed(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.DecodeToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	m := NewTokenManager("test-secret", 0)
	assert.Equal(t, DefaultTokenTTL, m.TTL())

	m = NewTokenManager("test-secret", -time.Hour)
	assert.Equal(t, DefaultTokenTTL, m.TTL())
}

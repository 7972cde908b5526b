package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-that-is-long-enough-123456"

func TestTokenManager_AccessToken(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)

	token, err := m.GenerateAccessToken(42, "user@test.com", []string{RoleAdmin})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.True(t, claims.IsAdmin())
}

func TestTokenManager_RefreshToken(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)

	token, err := m.GenerateRefreshToken(42, "user@test.com")
	assert.NoError(t, err)

	claims, err := m.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.False(t, claims.IsAdmin())
}

func TestTokenManager_ValidateToken(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-that-is-long-enough-42", time.Hour, time.Hour)
		token, err := other.GenerateAccessToken(1, "a@b.c", nil)
		assert.NoError(t, err)

		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewTokenManager(testSecret, -time.Hour, time.Hour)
		token, err := expired.GenerateAccessToken(1, "a@b.c", nil)
		assert.NoError(t, err)

		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour, "habit-store")
	userID := uuid.New()

	token, expiresAt, err := tm.GenerateAccessToken(userID)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	got, err := tm.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidate_WrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour, "habit-store")
	other := NewTokenManager("different", time.Hour, "habit-store")

	token, _, err := tm.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute, "habit-store")

	token, _, err := tm.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour, "habit-store")

	_, err := tm.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "a@x.com", 42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, id, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
	assert.EqualValues(t, 42, id)
}

func TestToken_WrongSecretFails(t *testing.T) {
	token, err := GenerateToken("secret", "a@x.com", 42, time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestToken_ExpiredFails(t *testing.T) {
	token, err := GenerateToken("secret", "a@x.com", 42, -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestToken_GarbageFails(t *testing.T) {
	_, _, err := ParseToken("secret", "not-a-token")
	assert.Error(t, err)
}

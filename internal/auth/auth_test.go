package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	passwords := []string{"pw123", "a much longer pass phrase", "üñïçödé"}
	for _, password := range passwords {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash, "hash must not store the plaintext")
		assert.True(t, CheckPassword(password, hash))
		assert.False(t, CheckPassword(password+"x", hash))
	}
}

func TestCheckPasswordAgainstGarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("pw123", "not-a-bcrypt-hash"))
}

func TestGenerateSessionToken(t *testing.T) {
	a, err := GenerateSessionToken()
	require.NoError(t, err)
	b, err := GenerateSessionToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b, "tokens must be unique")
}

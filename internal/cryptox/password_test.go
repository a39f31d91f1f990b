package cryptox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", hash)

	assert.True(t, CheckPassword("Passw0rd", hash))
	assert.False(t, CheckPassword("passw0rd", hash))
	assert.False(t, CheckPassword("Passw0rd", "not-a-hash"))
}

func TestHashPassword_Error(t *testing.T) {
	orig := bcryptGenerateFromPassword
	t.Cleanup(func() { bcryptGenerateFromPassword = orig })
	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	_, err := HashPassword("Passw0rd", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to hash password")
}

func TestEqualPlain(t *testing.T) {
	assert.True(t, EqualPlain("Demo123!", "Demo123!"))
	assert.False(t, EqualPlain("Demo123!", "demo123!"))
	assert.False(t, EqualPlain("Demo123!", ""))
	assert.True(t, EqualPlain("", ""))
}

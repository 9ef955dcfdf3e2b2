package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := Bcrypt{Cost: bcrypt.MinCost}
	hashed, err := h.Hash("Secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1", hashed)

	assert.True(t, h.Compare(hashed, "Secret1"))
	assert.False(t, h.Compare(hashed, "secret1"))
}

func TestHashPassword_UsesDefaultCost(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("Secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
	assert.True(t, CheckPassword(hashed, "Secret1"))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; production uses the configured cost.
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and compare round trip", func(t *testing.T) {
		t.Parallel()

		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	})

	t.Run("compare rejects wrong password", func(t *testing.T) {
		t.Parallel()

		hash, err := hasher.Hash("right-password")
		require.NoError(t, err)

		assert.Error(t, hasher.Compare(hash, "wrong-password"))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()

		hash1, err := hasher.Hash("same-password")
		require.NoError(t, err)
		hash2, err := hasher.Hash("same-password")
		require.NoError(t, err)

		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("zero cost falls back to default", func(t *testing.T) {
		t.Parallel()

		h := NewBcryptHasher(0)
		assert.Equal(t, bcrypt.DefaultCost, h.Cost())
	})
}

package services_test

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHash_RoundTrip(t *testing.T) {
	hash, salt, err := services.CreateHash("MyPassword123")
	require.NoError(t, err)
	assert.Len(t, hash, services.HashSize)
	assert.Len(t, salt, services.SaltSize)

	ok, err := services.VerifyHash("MyPassword123", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = services.VerifyHash("MyPassword124", hash, salt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateHash_BlankPassword(t *testing.T) {
	for _, password := range []string{"", "   ", "\t"} {
		_, _, err := services.CreateHash(password)
		assert.ErrorIs(t, err, services.ErrInvalidPassword, "password %q", password)
	}
}

func TestCreateHash_SaltsDiffer(t *testing.T) {
	hash1, salt1, err := services.CreateHash("same password")
	require.NoError(t, err)
	hash2, salt2, err := services.CreateHash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyHash_SingleByteMutation(t *testing.T) {
	hash, salt, err := services.CreateHash("MyPassword123")
	require.NoError(t, err)

	for i := range hash {
		mutated := make([]byte, len(hash))
		copy(mutated, hash)
		mutated[i] ^= 0x01

		ok, err := services.VerifyHash("MyPassword123", mutated, salt)
		require.NoError(t, err)
		assert.False(t, ok, "mutated hash byte %d still verified", i)
	}

	mutatedSalt := make([]byte, len(salt))
	copy(mutatedSalt, salt)
	mutatedSalt[0] ^= 0x01
	ok, err := services.VerifyHash("MyPassword123", hash, mutatedSalt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyHash_LengthContract(t *testing.T) {
	hash, salt, err := services.CreateHash("MyPassword123")
	require.NoError(t, err)

	_, err = services.VerifyHash("MyPassword123", hash[:32], salt)
	assert.Error(t, err)

	_, err = services.VerifyHash("MyPassword123", hash, salt[:64])
	assert.Error(t, err)

	_, err = services.VerifyHash("", hash, salt)
	assert.ErrorIs(t, err, services.ErrInvalidPassword)
}

func TestGenerateRandomToken_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{0, 1, 8, 30, 64} {
		token, err := services.GenerateRandomToken(length)
		require.NoError(t, err)
		assert.Len(t, token, length)

		for _, r := range token {
			isAlnum := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			assert.True(t, isAlnum, "unexpected character %q in token", r)
		}
	}
}

func TestGenerateRandomToken_NoCollisions(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		token, err := services.GenerateRandomToken(16)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "token collision after %d draws", i)
		seen[token] = struct{}{}
	}
}

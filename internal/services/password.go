package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"strings"
)

const (
	// HashSize is the length of an HMAC-SHA512 digest.
	HashSize = 64
	// SaltSize is the length of the random HMAC key stored next to the hash.
	SaltSize = 128

	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// CreateHash derives a keyed hash of the password. The random key doubles as
// the salt, so hash and salt together are verifiable without the plaintext.
func CreateHash(password string) (hash, salt []byte, err error) {
	if strings.TrimSpace(password) == "" {
		return nil, nil, ErrInvalidPassword
	}

	salt = make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generating salt: %w", err)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil), salt, nil
}

// VerifyHash reports whether the password matches the stored hash/salt pair.
// Length checks guard against corrupted records.
func VerifyHash(password string, hash, salt []byte) (bool, error) {
	if strings.TrimSpace(password) == "" {
		return false, ErrInvalidPassword
	}
	if len(hash) != HashSize {
		return false, fmt.Errorf("invalid length of password hash (%d bytes expected)", HashSize)
	}
	if len(salt) != SaltSize {
		return false, fmt.Errorf("invalid length of password salt (%d bytes expected)", SaltSize)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return hmac.Equal(mac.Sum(nil), hash), nil
}

// GenerateRandomToken returns a random alphanumeric string of the given
// length, each character drawn uniformly from a single CSPRNG source.
func GenerateRandomToken(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)

	// Rejection sampling: 256 % 62 != 0, so bytes past the largest multiple
	// of 62 would skew the distribution.
	limit := byte(256 - 256%len(tokenAlphabet))
	buf := make([]byte, 1)
	for b.Len() < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		if buf[0] >= limit {
			continue
		}
		b.WriteByte(tokenAlphabet[int(buf[0])%len(tokenAlphabet)])
	}
	return b.String(), nil
}

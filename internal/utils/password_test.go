package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordAndCheck(t *testing.T) {
	password := "s3cret-password"

	hash, err := HashPassword(password, bcrypt.MinCost)
	assert.NoError(t, err, "Hashing should not return an error")
	assert.NotEmpty(t, hash, "Hash should not be empty")
	assert.NotEqual(t, password, hash, "Hash must not equal the plaintext password")

	assert.True(t, CheckPasswordHash(password, hash), "Correct password should verify")
	assert.False(t, CheckPasswordHash("wrong-password", hash), "Wrong password should not verify")
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	password := "same-password"

	hash1, err := HashPassword(password, bcrypt.MinCost)
	assert.NoError(t, err)
	hash2, err := HashPassword(password, bcrypt.MinCost)
	assert.NoError(t, err)

	// bcrypt salts each hash, so two hashes of the same input differ.
	assert.NotEqual(t, hash1, hash2, "Each hash should carry its own salt")
	assert.True(t, CheckPasswordHash(password, hash1))
	assert.True(t, CheckPasswordHash(password, hash2))
}

func TestHashPasswordInvalidCostFallsBack(t *testing.T) {
	password := "whatever"

	hash, err := HashPassword(password, 999)
	assert.NoError(t, err, "Out-of-range cost should fall back to the default, not fail")
	assert.True(t, CheckPasswordHash(password, hash))
}

func TestCheckPasswordHashGarbageHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("password", "not-a-bcrypt-hash"), "Garbage hash should not verify")
	assert.False(t, CheckPasswordHash("password", ""), "Empty hash should not verify")
}

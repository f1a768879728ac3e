package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("dokter123")
	assert.NoError(t, err)
	assert.NotEqual(t, "dokter123", hash)

	assert.True(t, CheckPassword("dokter123", hash))
	assert.False(t, CheckPassword("salah", hash))
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("apapun", "bukan-hash-bcrypt"))
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("rahasia-123")
	require.NoError(t, err)
	assert.Contains(t, hashed, "$argon2id$")

	assert.NoError(t, ComparePassword(hashed, "rahasia-123"))
	assert.Error(t, ComparePassword(hashed, "salah-123"))
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestComparePasswordBadFormat(t *testing.T) {
	assert.Error(t, ComparePassword("not-a-hash", "whatever"))
}

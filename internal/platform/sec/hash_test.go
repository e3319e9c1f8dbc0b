// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comuna-ec/comuna/internal/platform/sec"
)

/*
TestHashPassword verifies hashing round-trips and that the plain text is
never recoverable from the stored form.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse")
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestHashPassword_SaltPerCall verifies two hashes of the same input differ.
*/
func TestHashPassword_SaltPerCall(t *testing.T) {
	first, err := sec.HashPassword("same-input")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("same-input", first))
	assert.True(t, sec.CheckPasswordHash("same-input", second))
}

/*
TestCheckPasswordHash_MalformedHash verifies that a corrupted stored hash
fails verification instead of erroring.
*/
func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("anything", ""))
}

/*
TestGenerateSecureToken verifies length, encoding, and uniqueness of
generated opaque tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 bytes base64-encode to 44 characters.
	assert.Len(t, first, 44)
	assert.NotEqual(t, first, second)
}

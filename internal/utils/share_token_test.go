package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShareToken_IsURLSafeAndUnique(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-Za-z]{43}$`)
	seen := make(map[string]struct{}, 200)

	for i := 0; i < 200; i++ {
		token, err := NewShareToken()
		require.NoError(t, err)
		assert.Regexp(t, pattern, token)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token %s", token)
		seen[token] = struct{}{}
	}
}

func TestRandomString_Bounds(t *testing.T) {
	value, err := RandomString(0, "ab")
	require.NoError(t, err)
	assert.Empty(t, value)

	_, err = RandomString(-1, "ab")
	assert.ErrorIs(t, err, errNegativeLength)

	_, err = RandomString(4, "")
	assert.ErrorIs(t, err, errEmptyAlphabet)

	value, err = RandomString(16, "x")
	require.NoError(t, err)
	assert.Equal(t, "xxxxxxxxxxxxxxxx", value)
}

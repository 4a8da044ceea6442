package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	credential, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery staple", credential))
	assert.False(t, VerifyPassword("correct horse battery stable", credential))
	assert.False(t, VerifyPassword("", credential))
}

func TestHashPasswordFormat(t *testing.T) {
	credential, err := HashPassword("secret")
	require.NoError(t, err)

	salt, hash, found := strings.Cut(credential, ":")
	require.True(t, found)
	// 16 salt bytes and a 64-byte derived key, both hex encoded.
	assert.Len(t, salt, 32)
	assert.Len(t, hash, 128)
}

func TestHashPasswordSaltsAreRandom(t *testing.T) {
	first, err := HashPassword("secret")
	require.NoError(t, err)
	second, err := HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("secret", first))
	assert.True(t, VerifyPassword("secret", second))
}

func TestVerifyPasswordFailsClosed(t *testing.T) {
	tests := []struct {
		name       string
		credential string
	}{
		{"empty", ""},
		{"no separator", "deadbeef"},
		{"missing salt", ":deadbeef"},
		{"missing hash", "deadbeef:"},
		{"hash not hex", "deadbeef:not-hex-at-all"},
		{"truncated hash", "deadbeef:abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("secret", tt.credential))
		})
	}
}

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewSessionManager("test-secret", SessionTTL)

	token := m.Issue(7)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	session, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.InDelta(t, time.Now().Add(SessionTTL).Unix(), session.ExpiresAt, 2)
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewSessionManager("test-secret", -time.Minute)

	_, err := m.Validate(m.Issue(7))
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateTamperedSignature(t *testing.T) {
	m := NewSessionManager("test-secret", SessionTTL)
	token := m.Issue(7)

	// Flipping any single signature character must invalidate the token.
	last := token[len(token)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err := m.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer := NewSessionManager("secret-a", SessionTTL)
	verifier := NewSessionManager("secret-b", SessionTTL)

	_, err := verifier.Validate(issuer.Issue(7))
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateMalformedTokens(t *testing.T) {
	m := NewSessionManager("test-secret", SessionTTL)
	valid := m.Issue(7)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two fields", "7.123456"},
		{"four fields", valid + ".extra"},
		{"non-numeric user id", strings.Replace(valid, "7.", "x.", 1)},
		{"zero user id", strings.Replace(valid, "7.", "0.", 1)},
		{"negative user id", strings.Replace(valid, "7.", "-7.", 1)},
		{"short signature", valid[:len(valid)-10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

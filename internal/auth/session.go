package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// CookieName is the fixed name of the session cookie.
const CookieName = "bookmark_session"

// SessionTTL is how long an issued token stays valid.
const SessionTTL = 7 * 24 * time.Hour

// ErrInvalidSession is returned for any token that fails validation. No
// further detail is exposed on why.
var ErrInvalidSession = errors.New("invalid session token")

// Session is the claim set carried by a valid token.
type Session struct {
	UserID    int64
	ExpiresAt int64
}

// SessionManager mints and validates stateless signed session tokens.
// A token is "userId.expiresAt.signature" where the signature is an
// HMAC-SHA256 over "userId.expiresAt", hex encoded. Nothing is stored
// server-side; validity is purely a function of signature and expiry.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a SessionManager signing with secret. Tokens
// expire ttl after issuance.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for userID expiring after the configured TTL.
func (m *SessionManager) Issue(userID int64) string {
	expiresAt := m.now().Add(m.ttl).Unix()
	payload := strconv.FormatInt(userID, 10) + "." + strconv.FormatInt(expiresAt, 10)
	return payload + "." + m.sign(payload)
}

// Validate checks a token's shape, expiry and signature. The signature
// comparison is constant time and a length mismatch yields
// ErrInvalidSession rather than a panic.
func (m *SessionManager) Validate(token string) (*Session, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidSession
	}

	userID, ok := parsePositiveInt(parts[0])
	if !ok {
		return nil, ErrInvalidSession
	}
	expiresAt, ok := parsePositiveInt(parts[1])
	if !ok {
		return nil, ErrInvalidSession
	}

	if expiresAt < m.now().Unix() {
		return nil, ErrInvalidSession
	}

	payload := parts[0] + "." + parts[1]
	expected := m.sign(payload)
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return nil, ErrInvalidSession
	}

	return &Session{UserID: userID, ExpiresAt: expiresAt}, nil
}

func (m *SessionManager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func parsePositiveInt(value string) (int64, bool) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

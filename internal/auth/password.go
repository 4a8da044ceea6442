package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters, tuned so a derivation takes tens of
// milliseconds on current hardware.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1

	saltLength = 16
	keyLength  = 64
)

// HashPassword derives a credential string from the given password using
// scrypt with a random salt. The result encodes as "saltHex:derivedKeyHex";
// the plaintext password is never stored.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	derived, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return salt + ":" + hex.EncodeToString(derived), nil
}

// VerifyPassword reports whether password matches the stored credential.
// It fails closed: any malformed credential yields false, never an error.
// The derived-key comparison is constant time.
func VerifyPassword(password, credential string) bool {
	salt, hash, found := strings.Cut(credential, ":")
	if !found || salt == "" || hash == "" {
		return false
	}

	original, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}

	derived, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false
	}

	if len(derived) != len(original) {
		return false
	}

	return subtle.ConstantTimeCompare(derived, original) == 1
}

// Package token provides random token generation and comparison helpers.
package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

// DefaultLength is the default token length in bytes.
const DefaultLength = 16

// GenerateHex generates a cryptographically secure random token,
// hex encoded. With the default length the result is 32 characters.
func GenerateHex(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Generate generates a cryptographically secure random token of the
// default length, Base64 RawURL encoded for safe cookie transmission.
func Generate() (string, error) {
	bytes := make([]byte, DefaultLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// Equal compares two tokens in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

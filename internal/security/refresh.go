package security

import (
	"crypto/rand"
	"encoding/base64"
)

// NewRefreshToken returns 256 bits of randomness, base64url without padding.
// Only its sha256 hash is persisted.
func NewRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// TokenSize256 is 32 random bytes, 43 characters once base64url encoded.
// Magic links, invite links and volunteer manage links all use it.
const TokenSize256 = 32

// GenerateToken returns size random bytes encoded as unpadded base64url, so
// the result can be dropped straight into a URL path segment.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken returns the SHA-256 of token as base64url. Only the
// fingerprint is persisted; a database dump does not hand out working links.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// SecretEqual compares a presented shared secret against the expected one in
// constant time. An empty expected secret never matches.
func SecretEqual(expected, presented string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) == 1
}

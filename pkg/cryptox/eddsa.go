package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// GenerateEd25519Key generates a random Ed25519 private key and returns it
// PEM encoded (PKCS8).
func GenerateEd25519Key() ([]byte, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}
	return encodeEd25519(privateKey)
}

// DeriveEd25519Key derives a deterministic Ed25519 private key from a shared
// secret using HKDF-SHA256. The same secret and info always produce the same
// key, so session cookies survive restarts and are accepted by every replica.
func DeriveEd25519Key(secret []byte, info string) ([]byte, error) {
	if len(secret) < 16 {
		return nil, errors.New("cryptox: secret must be at least 16 bytes")
	}

	seed := make([]byte, ed25519.SeedSize)
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("cryptox: hkdf: %w", err)
	}

	return encodeEd25519(ed25519.NewKeyFromSeed(seed))
}

func encodeEd25519(key ed25519.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: der,
	}), nil
}

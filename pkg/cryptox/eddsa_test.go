package cryptox_test

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/aussiebroadwan/rally/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func parseEd25519(t *testing.T, pemBytes []byte) ed25519.PrivateKey {
	t.Helper()

	block, _ := pem.Decode(pemBytes)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	keyInterface, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)

	key, ok := keyInterface.(ed25519.PrivateKey)
	require.True(t, ok)
	require.Len(t, key, ed25519.PrivateKeySize)
	return key
}

func TestGenerateEd25519Key(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	parseEd25519(t, pemBytes)
}

func TestDeriveEd25519Key_Deterministic(t *testing.T) {
	secret := []byte("a-session-secret-that-is-long-enough")

	a, err := cryptox.DeriveEd25519Key(secret, "rally-session")
	require.NoError(t, err)
	b, err := cryptox.DeriveEd25519Key(secret, "rally-session")
	require.NoError(t, err)
	require.Equal(t, parseEd25519(t, a), parseEd25519(t, b))

	c, err := cryptox.DeriveEd25519Key(secret, "something-else")
	require.NoError(t, err)
	require.NotEqual(t, parseEd25519(t, a), parseEd25519(t, c))
}

func TestDeriveEd25519Key_ShortSecret(t *testing.T) {
	_, err := cryptox.DeriveEd25519Key([]byte("short"), "rally-session")
	require.Error(t, err)
}

package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.Len(t, token, 43)

	token2, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, token, token2, "tokens should be unique")
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"zero size", 0},
		{"negative size", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.Error(t, err)
			require.Empty(t, token)
		})
	}
}

func TestGenerateToken_URLSafe(t *testing.T) {
	for range 50 {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		require.NotContains(t, token, "/")
		require.NotContains(t, token, "+")
		require.NotContains(t, token, "=")
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("test-token-1")
	fp1b := FingerprintToken("test-token-1")
	fp2 := FingerprintToken("test-token-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}

func TestSecretEqual(t *testing.T) {
	require.True(t, SecretEqual("s3cret", "s3cret"))
	require.False(t, SecretEqual("s3cret", "s3cre"))
	require.False(t, SecretEqual("s3cret", ""))
	require.False(t, SecretEqual("", ""), "an unset secret must never authorise")
}

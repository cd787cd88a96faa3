package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/rally/pkg/cryptox"
	"github.com/aussiebroadwan/rally/pkg/jwtx"
)

const sessionKeyInfo = "rally session signing key v1"

// SessionKeys holds the session signer and the matching verifier.
type SessionKeys struct {
	Signer   jwtx.Signer
	KeySet   *jwtx.KeySet
	Verifier jwtx.Verifier
}

// InitSessionKeys derives the session signing key from SESSION_SECRET so
// sessions survive restarts. Without a secret a random key is generated and
// every restart signs everyone out.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*SessionKeys, error) {
	var (
		pemKey []byte
		err    error
	)
	if cfg.SessionSecret != "" {
		pemKey, err = cryptox.DeriveEd25519Key([]byte(cfg.SessionSecret), sessionKeyInfo)
	} else {
		logger.Warn("SESSION_SECRET not set; using an ephemeral session key")
		pemKey, err = cryptox.GenerateEd25519Key()
	}
	if err != nil {
		return nil, fmt.Errorf("session key: %w", err)
	}

	signer, err := jwtx.NewSignerEdDSA("session", pemKey)
	if err != nil {
		return nil, err
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, err
	}

	return &SessionKeys{
		Signer:   signer,
		KeySet:   keys,
		Verifier: jwtx.NewCommonEdDSA(keys, cfg.SessionIssuer, []string{cfg.SessionIssuer}),
	}, nil
}

package service

import (
	"context"

	"github.com/aussiebroadwan/rally/internal/rally/zitadel"
)

// PasskeyClient is the part of the identity provider API passkey
// management needs.
type PasskeyClient interface {
	ListPasskeys(ctx context.Context, userID string) ([]zitadel.Passkey, error)
	RemovePasskey(ctx context.Context, userID, passkeyID string) error
}

// PasskeyService manages the signed-in user's passkeys at the identity
// provider. Only OIDC sessions carry the provider user id it needs.
type PasskeyService struct {
	IdP PasskeyClient
}

func (s *PasskeyService) List(ctx context.Context, idpSubject string) ([]zitadel.Passkey, error) {
	if idpSubject == "" {
		return nil, ErrNoIdPSubject
	}
	return s.IdP.ListPasskeys(ctx, idpSubject)
}

func (s *PasskeyService) Remove(ctx context.Context, idpSubject, passkeyID string) error {
	if idpSubject == "" {
		return ErrNoIdPSubject
	}
	return s.IdP.RemovePasskey(ctx, idpSubject, passkeyID)
}

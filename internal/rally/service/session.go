package service

import (
	"time"

	"github.com/aussiebroadwan/rally/pkg/jwtx"
)

// SessionService signs session tokens for authenticated identities.
type SessionService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// Issue signs a session for email. idpSubject is empty for magic-link
// sessions.
func (s *SessionService) Issue(email, idpSubject string, amr ...string) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(email, idpSubject, amr, ttl, s.Issuer, clock(s.Now))
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

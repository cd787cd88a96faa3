package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/cryptox"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// TokenService issues and consumes opaque single-use tokens. Only token
// fingerprints are stored; the raw value exists in the link that carries it.
type TokenService struct {
	Store store.Store
	Now   func() time.Time
}

// Issue mints a token for purpose and subject that expires after ttl.
// inviteID optionally ties a magic link to a pending invite.
func (s *TokenService) Issue(
	ctx context.Context,
	purpose domain.TokenPurpose,
	subject string,
	ttl time.Duration,
	inviteID string,
) (string, domain.Token, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Token{}, fmt.Errorf("generate token: %w", err)
	}

	now := clock(s.Now)
	tok := domain.Token{
		Hash:      cryptox.FingerprintToken(raw),
		Purpose:   purpose,
		Subject:   subject,
		InviteID:  inviteID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.Store.Tokens().CreateToken(ctx, tok); err != nil {
		return "", domain.Token{}, fmt.Errorf("store token: %w", err)
	}

	slogx.FromContext(ctx).Debug("token issued",
		slog.String("purpose", string(purpose)),
		slog.Time("expires_at", tok.ExpiresAt),
	)
	return raw, tok, nil
}

// Redeem consumes a token. Unknown, used, expired and wrong-purpose tokens
// all return ErrTokenNotFound. Of any number of concurrent callers at most
// one succeeds.
func (s *TokenService) Redeem(ctx context.Context, purpose domain.TokenPurpose, raw string) (domain.Token, error) {
	if raw == "" {
		return domain.Token{}, ErrTokenNotFound
	}

	tok, err := s.Store.Tokens().RedeemToken(ctx, cryptox.FingerprintToken(raw), purpose, clock(s.Now))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, ErrTokenNotFound
		}
		return domain.Token{}, fmt.Errorf("redeem token: %w", err)
	}
	return tok, nil
}

// Lookup checks a token against the same predicate as Redeem without
// consuming it.
func (s *TokenService) Lookup(ctx context.Context, purpose domain.TokenPurpose, raw string) (domain.Token, error) {
	if raw == "" {
		return domain.Token{}, ErrTokenNotFound
	}

	tok, err := s.Store.Tokens().GetValidToken(ctx, cryptox.FingerprintToken(raw), purpose, clock(s.Now))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, ErrTokenNotFound
		}
		return domain.Token{}, fmt.Errorf("lookup token: %w", err)
	}
	return tok, nil
}

// MarkUsed flags a token as used. Repeated calls are no-ops and keep the
// first used_at.
func (s *TokenService) MarkUsed(ctx context.Context, raw string) error {
	err := s.Store.Tokens().MarkTokenUsed(ctx, cryptox.FingerprintToken(raw), clock(s.Now))
	if errors.Is(err, store.ErrNotFound) {
		return ErrTokenNotFound
	}
	if err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	return nil
}

// PurgeExpired deletes tokens that expired or were used before olderThan.
// A cutoff in the future is clamped to now so a live token is never purged.
func (s *TokenService) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if now := clock(s.Now); olderThan.After(now) {
		olderThan = now
	}

	n, err := s.Store.Tokens().DeleteExpiredTokens(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("purge tokens: %w", err)
	}
	return n, nil
}

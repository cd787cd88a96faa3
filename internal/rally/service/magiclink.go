package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/notify"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

const DefaultMagicLinkTTL = 15 * time.Minute

// MagicLinkService signs users in by email. A link may carry a pending
// invite, which is accepted for the redeeming email on first use.
type MagicLinkService struct {
	Tokens  *TokenService
	Invites *InviteService
	Mailer  notify.Mailer

	// BaseURL is the public origin links are built on.
	BaseURL string
	TTL     time.Duration
}

// MagicLinkResult is who a redeemed link signs in and, when it carried an
// invite that could be accepted, the organization joined.
type MagicLinkResult struct {
	Email          string
	OrganizationID string
}

// Request emails a sign-in link to email. inviteToken is optional; an
// invalid one is ignored and the link signs in without joining.
func (s *MagicLinkService) Request(ctx context.Context, email, inviteToken string) error {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	var inviteID string
	if inviteToken != "" {
		invite, err := s.Invites.GetByToken(ctx, inviteToken)
		switch {
		case err == nil:
			inviteID = invite.ID
		case errors.Is(err, ErrInviteNotFound):
			log.Info("magic link requested with a stale invite")
		default:
			return err
		}
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultMagicLinkTTL
	}

	raw, _, err := s.Tokens.Issue(ctx, domain.TokenPurposeMagicLink, email, ttl, inviteID)
	if err != nil {
		log.Error("failed to issue magic link", slog.Any("error", err))
		return err
	}

	link := MagicLinkURL(s.BaseURL, raw)
	body := fmt.Sprintf(
		"Use the link below to sign in to Rally. It expires in %s and works once.\n\n%s\n",
		ttl, link,
	)
	if err := s.Mailer.SendMail(ctx, email, "Your Rally sign-in link", body); err != nil {
		log.Error("failed to send magic link", slog.Any("error", err))
		return fmt.Errorf("send magic link: %w", err)
	}

	log.Info("magic link sent", slog.Bool("with_invite", inviteID != ""))
	return nil
}

// Redeem consumes a magic link token. A linked invite that can no longer be
// accepted does not block sign-in.
func (s *MagicLinkService) Redeem(ctx context.Context, raw string) (MagicLinkResult, error) {
	log := slogx.FromContext(ctx)

	tok, err := s.Tokens.Redeem(ctx, domain.TokenPurposeMagicLink, raw)
	if err != nil {
		return MagicLinkResult{}, err
	}

	res := MagicLinkResult{Email: tok.Subject}
	if tok.InviteID == "" {
		return res, nil
	}

	m, err := s.Invites.AcceptByID(ctx, tok.InviteID, tok.Subject)
	switch {
	case err == nil:
		res.OrganizationID = m.OrganizationID
	case errors.Is(err, ErrInviteNotFound),
		errors.Is(err, ErrEmailMismatch),
		errors.Is(err, ErrAlreadyMember):
		log.Warn("magic link carried an invite that could not be accepted",
			slog.String("invite_id", tok.InviteID),
			slog.String("reason", err.Error()),
		)
	default:
		return MagicLinkResult{}, err
	}
	return res, nil
}

// MagicLinkURL is the link a user clicks to redeem raw.
func MagicLinkURL(baseURL, raw string) string {
	return strings.TrimSuffix(baseURL, "/") + "/auth/magic/" + raw
}

// InviteURL is the shareable link for an invite token.
func InviteURL(baseURL, raw string) string {
	return strings.TrimSuffix(baseURL, "/") + "/invites/" + raw
}

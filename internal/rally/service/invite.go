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
	"github.com/aussiebroadwan/rally/pkg/idx"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

const DefaultInviteTTL = 7 * 24 * time.Hour

// InviteService owns the pending -> active membership lifecycle. A pending
// membership is the invite; accepting it activates the same row, declining
// deletes it.
type InviteService struct {
	Store       store.Store
	Permissions *PermissionService
	TTL         time.Duration

	// LinkGrantsAnyIdentity lets whoever holds an invite link accept it under
	// their own email. When false the acting email must match the invitee.
	LinkGrantsAnyIdentity bool

	Now func() time.Time
}

func (s *InviteService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultInviteTTL
	}
	return s.TTL
}

// Create invites email into orgID with role. invitedBy must be an admin of
// the organization. An existing pending invite for the same email is
// re-tokened in place, so only the newest link works.
func (s *InviteService) Create(
	ctx context.Context,
	orgID string,
	email string,
	role domain.Role,
	invitedBy string,
) (domain.Membership, string, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	invitedBy = domain.NormalizeEmail(invitedBy)
	if orgID == "" || email == "" || invitedBy == "" {
		return domain.Membership{}, "", ErrInvalidInvite
	}
	if !role.Valid() {
		return domain.Membership{}, "", ErrInvalidRole
	}

	if _, err := s.Permissions.RequireOrgAdmin(ctx, orgID, invitedBy); err != nil {
		if errors.Is(err, ErrForbidden) {
			log.Warn("invite attempted without admin rights",
				slog.String("organization_id", orgID),
				slog.String("invited_by", invitedBy),
			)
		}
		return domain.Membership{}, "", err
	}

	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Membership{}, "", fmt.Errorf("generate invite token: %w", err)
	}

	now := clock(s.Now)
	expiresAt := now.Add(s.ttl())

	var invite domain.Membership
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Memberships().GetActiveByEmail(ctx, orgID, email)
		if err == nil {
			return ErrAlreadyMember
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		invite, err = tx.Memberships().GetPendingByEmail(ctx, orgID, email)
		switch {
		case err == nil:
			invite.Role = role
			invite.InviteTokenHash = cryptox.FingerprintToken(raw)
			invite.TokenExpiresAt = &expiresAt
			invite.InvitedBy = invitedBy
			invite.InvitedAt = now
			return tx.Memberships().RetokenPending(ctx, invite)

		case errors.Is(err, store.ErrNotFound):
			invite = domain.Membership{
				ID:              idx.New().String(),
				OrganizationID:  orgID,
				UserEmail:       email,
				Role:            role,
				Status:          domain.MembershipPending,
				InviteTokenHash: cryptox.FingerprintToken(raw),
				TokenExpiresAt:  &expiresAt,
				InvitedBy:       invitedBy,
				InvitedAt:       now,
			}
			return tx.Memberships().CreateMembership(ctx, invite)

		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyMember) {
			return domain.Membership{}, "", err
		}
		log.Error("failed to store invite",
			slog.String("organization_id", orgID),
			slog.Any("error", err),
		)
		return domain.Membership{}, "", fmt.Errorf("store invite: %w", err)
	}

	log.Info("invite created",
		slog.String("invite_id", invite.ID),
		slog.String("organization_id", orgID),
		slog.String("role", string(role)),
		slog.Time("expires_at", expiresAt),
	)
	return invite, raw, nil
}

// GetByToken returns the pending invite behind raw. Unknown, expired and
// already consumed invites all return ErrInviteNotFound.
func (s *InviteService) GetByToken(ctx context.Context, raw string) (domain.Membership, error) {
	if raw == "" {
		return domain.Membership{}, ErrInviteNotFound
	}

	m, err := s.Store.Memberships().GetPendingByTokenHash(ctx, cryptox.FingerprintToken(raw), clock(s.Now))
	if errors.Is(err, store.ErrNotFound) {
		return domain.Membership{}, ErrInviteNotFound
	}
	if err != nil {
		return domain.Membership{}, fmt.Errorf("load invite: %w", err)
	}
	return m, nil
}

// Accept activates the invite behind raw for actingEmail. If actingEmail is
// already an active member the invite is discarded and the existing
// membership returned.
func (s *InviteService) Accept(ctx context.Context, raw, actingEmail string) (domain.Membership, error) {
	if raw == "" {
		return domain.Membership{}, ErrInviteNotFound
	}
	now := clock(s.Now)

	var out domain.Membership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		invite, err := tx.Memberships().GetPendingByTokenHash(ctx, cryptox.FingerprintToken(raw), now)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		if err != nil {
			return err
		}

		out, err = s.accept(ctx, tx, invite, actingEmail, now)
		return err
	})
	return out, s.mapAcceptErr(ctx, err)
}

// AcceptByID is Accept for an invite already resolved by id, as carried by a
// magic link. The invite must still be pending and unexpired.
func (s *InviteService) AcceptByID(ctx context.Context, inviteID, actingEmail string) (domain.Membership, error) {
	now := clock(s.Now)

	var out domain.Membership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		invite, err := tx.Memberships().GetMembershipByID(ctx, inviteID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		if err != nil {
			return err
		}
		if invite.IsActive() || invite.TokenExpiresAt == nil || !now.Before(*invite.TokenExpiresAt) {
			return ErrInviteNotFound
		}

		out, err = s.accept(ctx, tx, invite, actingEmail, now)
		return err
	})
	return out, s.mapAcceptErr(ctx, err)
}

func (s *InviteService) accept(
	ctx context.Context,
	tx store.Tx,
	invite domain.Membership,
	actingEmail string,
	now time.Time,
) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	actingEmail = domain.NormalizeEmail(actingEmail)
	if actingEmail == "" {
		return domain.Membership{}, ErrInvalidInvite
	}
	if !s.LinkGrantsAnyIdentity && actingEmail != invite.UserEmail {
		log.Warn("invite accepted by a different email",
			slog.String("invite_id", invite.ID),
		)
		return domain.Membership{}, ErrEmailMismatch
	}

	existing, err := tx.Memberships().GetActiveByEmail(ctx, invite.OrganizationID, actingEmail)
	if err == nil {
		// Already in: burn the invite so the link cannot be reused.
		if err := tx.Memberships().DeletePending(ctx, invite.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Membership{}, ErrInviteNotFound
			}
			return domain.Membership{}, err
		}
		log.Info("invite discarded for existing member",
			slog.String("invite_id", invite.ID),
			slog.String("membership_id", existing.ID),
		)
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Membership{}, err
	}

	m, err := tx.Memberships().ActivatePending(ctx, invite.ID, actingEmail, now)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Membership{}, ErrInviteNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.Membership{}, ErrAlreadyMember
	case err != nil:
		return domain.Membership{}, err
	}

	log.Info("invite accepted",
		slog.String("invite_id", m.ID),
		slog.String("organization_id", m.OrganizationID),
		slog.String("role", string(m.Role)),
	)
	return m, nil
}

func (s *InviteService) mapAcceptErr(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInviteNotFound),
		errors.Is(err, ErrEmailMismatch),
		errors.Is(err, ErrInvalidInvite),
		errors.Is(err, ErrAlreadyMember):
		return err
	default:
		slogx.FromContext(ctx).Error("failed to accept invite", slog.Any("error", err))
		return fmt.Errorf("accept invite: %w", err)
	}
}

// Decline deletes the pending invite behind raw.
func (s *InviteService) Decline(ctx context.Context, raw string) error {
	if raw == "" {
		return ErrInviteNotFound
	}
	now := clock(s.Now)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		invite, err := tx.Memberships().GetPendingByTokenHash(ctx, cryptox.FingerprintToken(raw), now)
		if err != nil {
			return err
		}
		return tx.Memberships().DeletePending(ctx, invite.ID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrInviteNotFound
	}
	if err != nil {
		return fmt.Errorf("decline invite: %w", err)
	}

	slogx.FromContext(ctx).Info("invite declined")
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/idx"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// minPhoneDigits rejects obviously truncated numbers.
const minPhoneDigits = 6

type SignupService struct {
	Store       store.Store
	Permissions *PermissionService
	Now         func() time.Time
}

type SignupInput struct {
	Name  string
	Phone string
	Email string
	Note  string
}

// Create adds a volunteer to a list of the event at orgID/eventSlug. The
// capacity check and insert share a transaction.
func (s *SignupService) Create(ctx context.Context, orgID, eventSlug, listID string, in SignupInput) (domain.Signup, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.Signup{}, ErrInvalidSignup
	}
	phone, err := normalizePhone(in.Phone)
	if err != nil {
		return domain.Signup{}, err
	}

	su := domain.Signup{
		ID:        idx.New().String(),
		ListID:    listID,
		Name:      in.Name,
		Phone:     phone,
		Email:     domain.NormalizeEmail(in.Email),
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: clock(s.Now),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ev, err := tx.Events().GetEventBySlug(ctx, orgID, eventSlug)
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		if err != nil {
			return err
		}

		list, err := tx.Lists().GetListByID(ctx, listID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && list.EventID != ev.ID) {
			return ErrListNotFound
		}
		if err != nil {
			return err
		}
		if list.IsLocked {
			return ErrListLocked
		}

		n, err := tx.Signups().CountByList(ctx, listID)
		if err != nil {
			return err
		}
		if !list.HasRoom(n) {
			return ErrListFull
		}
		return tx.Signups().CreateSignup(ctx, su)
	})
	if err != nil {
		if isSignupRejection(err) {
			return domain.Signup{}, err
		}
		return domain.Signup{}, fmt.Errorf("create signup: %w", err)
	}

	slogx.FromContext(ctx).Info("volunteer signed up",
		slog.String("signup_id", su.ID),
		slog.String("list_id", listID),
	)
	return su, nil
}

// Remove deletes a signup on behalf of actor, who must administer the
// organization running the event. Locked lists are left untouched.
func (s *SignupService) Remove(ctx context.Context, signupID, actor string) error {
	if signupID == "" {
		return ErrInvalidSignup
	}

	orgID, err := s.signupOrganization(ctx, signupID)
	if err != nil {
		return err
	}
	if _, err := s.Permissions.RequireOrgAdmin(ctx, orgID, actor); err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		su, err := tx.Signups().GetSignupByID(ctx, signupID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrSignupNotFound
		}
		if err != nil {
			return err
		}

		list, err := tx.Lists().GetListByID(ctx, su.ListID)
		if err != nil {
			return err
		}
		if list.IsLocked {
			return ErrListLocked
		}
		return tx.Signups().DeleteSignup(ctx, signupID)
	})
	if err != nil {
		if isSignupRejection(err) {
			return err
		}
		return fmt.Errorf("remove signup: %w", err)
	}

	slogx.FromContext(ctx).Info("signup removed",
		slog.String("signup_id", signupID),
		slog.String("removed_by", actor),
	)
	return nil
}

// signupOrganization resolves the organization a signup belongs to through
// its list and event.
func (s *SignupService) signupOrganization(ctx context.Context, signupID string) (string, error) {
	su, err := s.Store.Signups().GetSignupByID(ctx, signupID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrSignupNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load signup: %w", err)
	}

	list, err := s.Store.Lists().GetListByID(ctx, su.ListID)
	if err != nil {
		return "", fmt.Errorf("load list: %w", err)
	}
	ev, err := s.Store.Events().GetEventByID(ctx, list.EventID)
	if err != nil {
		return "", fmt.Errorf("load event: %w", err)
	}
	return ev.OrganizationID, nil
}

func isSignupRejection(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrListNotFound) ||
		errors.Is(err, ErrSignupNotFound) ||
		errors.Is(err, ErrListLocked) ||
		errors.Is(err, ErrListFull)
}

func normalizePhone(phone string) (string, error) {
	p := domain.NormalizePhone(phone)
	if len(strings.TrimPrefix(p, "+")) < minPhoneDigits {
		return "", ErrInvalidPhone
	}
	return p, nil
}

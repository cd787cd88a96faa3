package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/notify"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

const DefaultManageLinkTTL = 24 * time.Hour

// VolunteerService lets volunteers see and confirm their signups through a
// link texted to the phone they signed up with. Manage links are multi-use
// until they expire.
type VolunteerService struct {
	Store  store.Store
	Tokens *TokenService
	SMS    notify.SMSSender

	BaseURL string
	TTL     time.Duration
	Now     func() time.Time
}

// VolunteerView is what a manage link shows.
type VolunteerView struct {
	Phone   string
	Signups []domain.SignupDetail
}

// RequestLink texts a manage link to phone if it has any signups. Unknown
// numbers and delivery failures look the same to the caller as success.
func (s *VolunteerService) RequestLink(ctx context.Context, phone string) error {
	log := slogx.FromContext(ctx)

	phone, err := normalizePhone(phone)
	if err != nil {
		return err
	}

	signups, err := s.Store.Signups().ListDetailsByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("load signups: %w", err)
	}
	if len(signups) == 0 {
		log.Info("manage link requested for a phone with no signups")
		return nil
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultManageLinkTTL
	}
	raw, _, err := s.Tokens.Issue(ctx, domain.TokenPurposeVolunteerManage, phone, ttl, "")
	if err != nil {
		return err
	}

	link := strings.TrimSuffix(s.BaseURL, "/") + "/volunteer/manage/" + raw
	msg := domain.SMSMessage{
		Phone: phone,
		Body:  fmt.Sprintf("Rally: view and confirm your volunteer signups here: %s", link),
		Kind:  domain.SMSKindManageLink,
	}
	if err := sendLogged(ctx, s.SMS, s.Store.SMSMessages(), msg, clock(s.Now)); err != nil {
		log.Error("failed to send manage link", slog.Any("error", err))
		return nil
	}

	log.Info("manage link sent", slog.String("phone", domain.MaskPhone(phone)))
	return nil
}

// ListSignups returns the signups of the phone the manage link was sent to.
func (s *VolunteerService) ListSignups(ctx context.Context, raw string) (VolunteerView, error) {
	tok, err := s.Tokens.Lookup(ctx, domain.TokenPurposeVolunteerManage, raw)
	if err != nil {
		return VolunteerView{}, err
	}

	signups, err := s.Store.Signups().ListDetailsByPhone(ctx, tok.Subject)
	if err != nil {
		return VolunteerView{}, fmt.Errorf("load signups: %w", err)
	}
	return VolunteerView{Phone: tok.Subject, Signups: signups}, nil
}

// Confirm marks one of the link holder's signups as confirmed. Confirming
// twice keeps the first timestamp.
func (s *VolunteerService) Confirm(ctx context.Context, raw, signupID string) (domain.Signup, error) {
	if signupID == "" {
		return domain.Signup{}, ErrInvalidSignup
	}

	tok, err := s.Tokens.Lookup(ctx, domain.TokenPurposeVolunteerManage, raw)
	if err != nil {
		return domain.Signup{}, err
	}

	var su domain.Signup
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		su, err = tx.Signups().GetSignupByID(ctx, signupID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && su.Phone != tok.Subject) {
			return ErrSignupNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Signups().Confirm(ctx, signupID, clock(s.Now)); err != nil {
			return err
		}
		su, err = tx.Signups().GetSignupByID(ctx, signupID)
		return err
	})
	if errors.Is(err, ErrSignupNotFound) {
		return domain.Signup{}, err
	}
	if err != nil {
		return domain.Signup{}, fmt.Errorf("confirm signup: %w", err)
	}

	slogx.FromContext(ctx).Info("signup confirmed", slog.String("signup_id", signupID))
	return su, nil
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories per table group. A Tx implements the same
// interface so service code reads identically inside and outside a
// transaction.
type Store interface {
	Tokens() Tokens
	Memberships() Memberships
	Organizations() Organizations
	Events() Events
	Lists() Lists
	Signups() Signups
	SMSMessages() SMSMessages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only tx may be used: the sqlite
	// driver holds a single connection, so touching the outer Store
	// deadlocks.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tokens interface {
	CreateToken(ctx context.Context, t domain.Token) error

	// RedeemToken consumes a valid token in one statement and returns it.
	// Unknown, used and expired tokens all return ErrNotFound.
	RedeemToken(ctx context.Context, hash string, purpose domain.TokenPurpose, now time.Time) (domain.Token, error)

	// GetValidToken is RedeemToken without consuming.
	GetValidToken(ctx context.Context, hash string, purpose domain.TokenPurpose, now time.Time) (domain.Token, error)

	// MarkTokenUsed flags a token used. used_at keeps its first value.
	MarkTokenUsed(ctx context.Context, hash string, now time.Time) error

	// DeleteExpiredTokens removes tokens that expired or were used before
	// cutoff and returns how many went.
	DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

type Memberships interface {
	CreateMembership(ctx context.Context, m domain.Membership) error
	GetMembershipByID(ctx context.Context, id string) (domain.Membership, error)

	// GetPendingByTokenHash returns a pending invite whose token is unexpired.
	GetPendingByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Membership, error)

	GetPendingByEmail(ctx context.Context, orgID, email string) (domain.Membership, error)
	GetActiveByEmail(ctx context.Context, orgID, email string) (domain.Membership, error)

	// RetokenPending replaces the token and role of a pending invite.
	RetokenPending(ctx context.Context, m domain.Membership) error

	// ActivatePending flips a pending invite to active for email. Returns
	// ErrNotFound when the row is no longer pending.
	ActivatePending(ctx context.Context, id, email string, now time.Time) (domain.Membership, error)

	// DeletePending hard deletes a pending invite. Returns ErrNotFound when
	// the row is no longer pending.
	DeletePending(ctx context.Context, id string) error

	ListByOrganization(ctx context.Context, orgID string) ([]domain.Membership, error)

	// DeleteExpiredPending removes invites whose token expired before cutoff.
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)
}

type Organizations interface {
	CreateOrganization(ctx context.Context, o domain.Organization) error
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// ListForEmail returns organizations email owns or is an active member of.
	ListForEmail(ctx context.Context, email string) ([]domain.Organization, error)
}

type Events interface {
	CreateEvent(ctx context.Context, e domain.Event) error
	GetEventByID(ctx context.Context, id string) (domain.Event, error)
	GetEventBySlug(ctx context.Context, orgID, slug string) (domain.Event, error)
	ListByOrganization(ctx context.Context, orgID string) ([]domain.Event, error)
	SlugExists(ctx context.Context, orgID, slug string) (bool, error)

	// ListDueForReminder returns events starting in [from, to) that have not
	// had a reminder sent.
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]domain.Event, error)

	// ClaimReminder stamps reminder_sent_at if it is still unset. Returns
	// ErrNotFound when another run already claimed the event.
	ClaimReminder(ctx context.Context, id string, now time.Time) error
}

type Lists interface {
	CreateList(ctx context.Context, l domain.SignupList) error
	GetListByID(ctx context.Context, id string) (domain.SignupList, error)

	// ListByEvent returns the event's lists ordered by position.
	ListByEvent(ctx context.Context, eventID string) ([]domain.SignupList, error)
	NextPosition(ctx context.Context, eventID string) (int, error)
	SetPosition(ctx context.Context, id string, position int) error
	SetLocked(ctx context.Context, id string, locked bool) error
}

type Signups interface {
	CreateSignup(ctx context.Context, s domain.Signup) error
	GetSignupByID(ctx context.Context, id string) (domain.Signup, error)
	CountByList(ctx context.Context, listID string) (int, error)

	// ListByEvent returns every signup on any list of the event, oldest first.
	ListByEvent(ctx context.Context, eventID string) ([]domain.Signup, error)

	// ListDetailsByPhone joins signups for phone with their list and event,
	// soonest event first.
	ListDetailsByPhone(ctx context.Context, phone string) ([]domain.SignupDetail, error)

	Confirm(ctx context.Context, id string, now time.Time) error
	DeleteSignup(ctx context.Context, id string) error
}

type SMSMessages interface {
	CreateSMSMessage(ctx context.Context, m domain.SMSMessage) error
	ListByPhone(ctx context.Context, phone string) ([]domain.SMSMessage, error)
}

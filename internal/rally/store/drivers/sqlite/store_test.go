package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/internal/rally/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "rally.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())

	v, dirty, err := s.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), v)
}

func TestRedeemTokenIsAtMostOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Tokens().CreateToken(ctx, domain.Token{
		Hash:      "h1",
		Purpose:   domain.TokenPurposeMagicLink,
		Subject:   "a@b.com",
		CreatedAt: t0,
		ExpiresAt: t0.Add(15 * time.Minute),
	}))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Tokens().RedeemToken(ctx, "h1", domain.TokenPurposeMagicLink, t0); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
}

func TestRedeemTokenPredicates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tokens := s.Tokens()

	require.NoError(t, tokens.CreateToken(ctx, domain.Token{
		Hash: "h", Purpose: domain.TokenPurposeMagicLink, Subject: "a@b.com",
		CreatedAt: t0, ExpiresAt: t0.Add(time.Minute),
	}))

	_, err := tokens.RedeemToken(ctx, "h", domain.TokenPurposeVolunteerManage, t0)
	require.ErrorIs(t, err, store.ErrNotFound, "wrong purpose")

	_, err = tokens.RedeemToken(ctx, "h", domain.TokenPurposeMagicLink, t0.Add(time.Minute))
	require.ErrorIs(t, err, store.ErrNotFound, "expired at the boundary")

	_, err = tokens.RedeemToken(ctx, "missing", domain.TokenPurposeMagicLink, t0)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := tokens.RedeemToken(ctx, "h", domain.TokenPurposeMagicLink, t0)
	require.NoError(t, err)
	require.True(t, got.Used)
	require.Equal(t, t0, *got.UsedAt)
}

func TestMarkTokenUsedKeepsFirstTimestamp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tokens := s.Tokens()

	require.NoError(t, tokens.CreateToken(ctx, domain.Token{
		Hash: "h", Purpose: domain.TokenPurposeMagicLink, Subject: "a@b.com",
		CreatedAt: t0, ExpiresAt: t0.Add(time.Hour),
	}))

	require.NoError(t, tokens.MarkTokenUsed(ctx, "h", t0))
	require.NoError(t, tokens.MarkTokenUsed(ctx, "h", t0.Add(time.Minute)))
	require.ErrorIs(t, tokens.MarkTokenUsed(ctx, "nope", t0), store.ErrNotFound)

	// Purging just after the first use removes it, proving used_at stayed at t0.
	n, err := tokens.DeleteExpiredTokens(ctx, t0.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestActiveMembershipCannotCarryToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Organizations().CreateOrganization(ctx, domain.Organization{
		ID: "org", Name: "Org", OwnerEmail: "owner@x.com", CreatedAt: t0, UpdatedAt: t0,
	}))

	exp := t0.Add(time.Hour)
	err := s.Memberships().CreateMembership(ctx, domain.Membership{
		ID: "m1", OrganizationID: "org", UserEmail: "a@b.com", Role: domain.RoleMember,
		Status: domain.MembershipActive, InviteTokenHash: "tok", TokenExpiresAt: &exp,
		InvitedBy: "owner@x.com", InvitedAt: t0,
	})
	require.Error(t, err)
}

func TestActivatePendingOnlyOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Organizations().CreateOrganization(ctx, domain.Organization{
		ID: "org", Name: "Org", OwnerEmail: "owner@x.com", CreatedAt: t0, UpdatedAt: t0,
	}))
	exp := t0.Add(time.Hour)
	require.NoError(t, s.Memberships().CreateMembership(ctx, domain.Membership{
		ID: "m1", OrganizationID: "org", UserEmail: "x@y.com", Role: domain.RoleMember,
		Status: domain.MembershipPending, InviteTokenHash: "tok", TokenExpiresAt: &exp,
		InvitedBy: "owner@x.com", InvitedAt: t0,
	}))

	m, err := s.Memberships().ActivatePending(ctx, "m1", "z@y.com", t0)
	require.NoError(t, err)
	require.Equal(t, "z@y.com", m.UserEmail)
	require.Empty(t, m.InviteTokenHash)
	require.Nil(t, m.TokenExpiresAt)

	_, err = s.Memberships().ActivatePending(ctx, "m1", "z@y.com", t0)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Memberships().GetPendingByTokenHash(ctx, "tok", t0)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Organizations().CreateOrganization(ctx, domain.Organization{
			ID: "org", Name: "Org", OwnerEmail: "o@x.com", CreatedAt: t0, UpdatedAt: t0,
		}))
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Organizations().GetOrganizationByID(ctx, "org")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSignupDetailsJoin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Organizations().CreateOrganization(ctx, domain.Organization{
		ID: "org", Name: "Org", OwnerEmail: "o@x.com", CreatedAt: t0, UpdatedAt: t0,
	}))
	require.NoError(t, s.Events().CreateEvent(ctx, domain.Event{
		ID: "ev", OrganizationID: "org", Title: "Clean Up", Slug: "clean-up",
		StartsAt: t0.Add(48 * time.Hour), CreatedAt: t0, UpdatedAt: t0,
	}))
	require.NoError(t, s.Lists().CreateList(ctx, domain.SignupList{
		ID: "l1", EventID: "ev", Title: "Morning", CreatedAt: t0,
	}))
	require.NoError(t, s.Signups().CreateSignup(ctx, domain.Signup{
		ID: "s1", ListID: "l1", Name: "Sam", Phone: "+61412345678", CreatedAt: t0,
	}))

	details, err := s.Signups().ListDetailsByPhone(ctx, "+61412345678")
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, "Clean Up", details[0].EventTitle)
	require.Equal(t, "Morning", details[0].ListTitle)
	require.Equal(t, "org", details[0].OrganizationID)
	require.Equal(t, t0.Add(48*time.Hour), details[0].StartsAt)

	dup, err := s.Events().SlugExists(ctx, "org", "clean-up")
	require.NoError(t, err)
	require.True(t, dup)
}

func TestClaimReminderOnlyOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Organizations().CreateOrganization(ctx, domain.Organization{
		ID: "org", Name: "Org", OwnerEmail: "o@x.com", CreatedAt: t0, UpdatedAt: t0,
	}))
	require.NoError(t, s.Events().CreateEvent(ctx, domain.Event{
		ID: "ev", OrganizationID: "org", Title: "Clean Up", Slug: "clean-up",
		StartsAt: t0.Add(12 * time.Hour), CreatedAt: t0, UpdatedAt: t0,
	}))

	var claimed atomic.Int32
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Events().ClaimReminder(ctx, "ev", t0)
			if err == nil {
				claimed.Add(1)
				return
			}
			require.ErrorIs(t, err, store.ErrNotFound)
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), claimed.Load())

	due, err := s.Events().ListDueForReminder(ctx, t0, t0.Add(24*time.Hour))
	require.NoError(t, err)
	require.Empty(t, due)
}

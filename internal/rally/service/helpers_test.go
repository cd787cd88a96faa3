package service

import (
	"context"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/store/drivers/sqlite"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendMail(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

// fixture wires the services over a fresh sqlite file.
type fixture struct {
	store   *sqlite.Store
	clock   *testClock
	perms   *PermissionService
	tokens  *TokenService
	invites *InviteService
	orgs    *OrganizationService
	events  *EventService
	signups *SignupService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "rally.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clk := &testClock{now: t0}
	perms := &PermissionService{Store: st}

	return &fixture{
		store:   st,
		clock:   clk,
		perms:   perms,
		tokens:  &TokenService{Store: st, Now: clk.Now},
		invites: &InviteService{Store: st, Permissions: perms, LinkGrantsAnyIdentity: true, Now: clk.Now},
		orgs:    &OrganizationService{Store: st, Permissions: perms, Now: clk.Now},
		events:  &EventService{Store: st, Permissions: perms, Now: clk.Now},
		signups: &SignupService{Store: st, Permissions: perms, Now: clk.Now},
	}
}

func (f *fixture) org(t *testing.T, owner string) domain.Organization {
	t.Helper()
	org, err := f.orgs.Create(context.Background(), "Northside Tigers", owner)
	require.NoError(t, err)
	return org
}

// eventWithList creates an event starting in two days with one list.
func (f *fixture) eventWithList(t *testing.T, orgID, owner string, maxSlots int) (domain.Event, domain.SignupList) {
	t.Helper()
	ctx := context.Background()

	ev, err := f.events.CreateEvent(ctx, orgID, owner, EventInput{
		Title:    "Saturday Canteen",
		Location: "Clubhouse",
		StartsAt: f.clock.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	list, err := f.events.CreateList(ctx, orgID, ev.ID, owner, ListInput{Title: "BBQ", MaxSlots: maxSlots})
	require.NoError(t, err)
	return ev, list
}

var linkToken = regexp.MustCompile(`/(?:auth/magic|volunteer/manage)/([A-Za-z0-9_-]+)`)

func tokenFromLink(t *testing.T, body string) string {
	t.Helper()
	m := linkToken.FindStringSubmatch(body)
	require.Len(t, m, 2, "no link in %q", body)
	return m[1]
}

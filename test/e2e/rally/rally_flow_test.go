//go:build e2e

package rally_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

// TestMagicLinkIsSingleUse verifies a redeemed link cannot sign in again.
func TestMagicLinkIsSingleUse(t *testing.T) {
	c := setupRallyContainer(t)
	client := rallysdk.NewSDKClient(c.BaseURL)

	require.NoError(t, client.RequestMagicLink(t.Context(), rallysdk.MagicLinkRequest{Email: "coach@example.com"}))
	token := c.lastLinkToken(t, magicLinkPattern)

	session, err := client.RedeemMagicLink(t.Context(), token, cookieName)
	require.NoError(t, err)

	me, err := client.NewSession(session).Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "coach@example.com", me.Email)

	_, err = client.RedeemMagicLink(t.Context(), token, cookieName)
	require.Error(t, err)
}

// TestRosterLifecycle walks an admin through setting up an event and a
// volunteer through signing up and confirming.
func TestRosterLifecycle(t *testing.T) {
	c := setupRallyContainer(t)
	client := rallysdk.NewSDKClient(c.BaseURL)
	admin := c.signIn(t, "admin@example.com")
	ctx := t.Context()

	org, err := admin.CreateOrganization(ctx, "Northside Tigers")
	require.NoError(t, err)

	ev, err := admin.CreateEvent(ctx, org.ID, rallysdk.CreateEventRequest{
		Title:    "Saturday Canteen",
		StartsAt: time.Now().Add(12 * time.Hour).UTC(),
	})
	require.NoError(t, err)

	bbq, err := admin.CreateList(ctx, org.ID, ev.ID, rallysdk.CreateListRequest{Title: "BBQ", MaxSlots: 2})
	require.NoError(t, err)
	gate, err := admin.CreateList(ctx, org.ID, ev.ID, rallysdk.CreateListRequest{Title: "Gate"})
	require.NoError(t, err)
	require.NoError(t, admin.ReorderLists(ctx, org.ID, ev.ID, []string{gate.ID, bbq.ID}))

	su, err := client.SignUp(ctx, org.ID, ev.Slug, bbq.ID, rallysdk.CreateSignupRequest{Name: "Sam", Phone: "+61412345678"})
	require.NoError(t, err)

	page, err := client.GetEventPage(ctx, org.ID, ev.Slug)
	require.NoError(t, err)
	require.Equal(t, "Gate", page.Lists[0].Title)
	require.Len(t, page.Lists[1].Signups, 1)
	require.False(t, strings.Contains(page.Lists[1].Signups[0].Phone, "412345"))

	require.NoError(t, client.RequestManageLink(ctx, "+61412345678"))
	manage := c.lastLinkToken(t, manageLinkPattern)

	mine, err := client.ListVolunteerSignups(ctx, manage)
	require.NoError(t, err)
	require.Len(t, mine.Signups, 1)
	require.NoError(t, client.ConfirmSignup(ctx, manage, su.ID))

	_, err = admin.SetListLocked(ctx, org.ID, bbq.ID, true)
	require.NoError(t, err)

	var apiErr *rallysdk.APIError
	err = admin.RemoveSignup(ctx, su.ID)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	outsider := c.signIn(t, "outsider@example.com")
	_, err = admin.SetListLocked(ctx, org.ID, bbq.ID, false)
	require.NoError(t, err)
	err = outsider.RemoveSignup(ctx, su.ID)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.NoError(t, admin.RemoveSignup(ctx, su.ID))

	dup, err := admin.DuplicateEvent(ctx, org.ID, ev.ID, rallysdk.DuplicateEventRequest{StartsAt: ev.StartsAt.Add(7 * 24 * time.Hour)})
	require.NoError(t, err)
	require.Equal(t, "Saturday Canteen (copy)", dup.Title)
}

// TestInviteByMagicLink checks an invited admin can join by link.
func TestInviteByMagicLink(t *testing.T) {
	c := setupRallyContainer(t)
	client := rallysdk.NewSDKClient(c.BaseURL)
	owner := c.signIn(t, "owner@example.com")
	ctx := t.Context()

	org, err := owner.CreateOrganization(ctx, "Northside Tigers")
	require.NoError(t, err)

	sent, err := owner.SendInvite(ctx, rallysdk.SendInviteRequest{OrganizationID: org.ID, Email: "helper@example.com", Role: "admin"})
	require.NoError(t, err)
	inviteToken := sent.InviteURL[strings.LastIndex(sent.InviteURL, "/")+1:]

	view, err := client.GetInvite(ctx, inviteToken)
	require.NoError(t, err)
	require.Equal(t, "Northside Tigers", view.OrganizationName)

	helper := c.signIn(t, "helper@example.com")
	res, err := helper.AcceptInvite(ctx, inviteToken)
	require.NoError(t, err)
	require.Equal(t, "accepted", res.Status)

	_, err = client.GetInvite(ctx, inviteToken)
	require.Error(t, err)

	members, err := owner.ListMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
}

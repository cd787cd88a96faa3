package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

func TestCreateEventSlugAndSanitising(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")

	in := EventInput{
		Title:       "Club Day: Setup & Pack-down!",
		Description: `<p>Bring gloves</p><script>alert(1)</script><a href="javascript:x()">x</a>`,
		StartsAt:    t0.Add(72 * time.Hour),
	}

	first, err := f.events.CreateEvent(ctx, org.ID, "owner@club.org", in)
	require.NoError(t, err)
	require.Equal(t, "club-day-setup-and-pack-down", first.Slug)
	require.Contains(t, first.Description, "<p>Bring gloves</p>")
	require.NotContains(t, first.Description, "script")
	require.NotContains(t, first.Description, "javascript:")

	second, err := f.events.CreateEvent(ctx, org.ID, "owner@club.org", in)
	require.NoError(t, err)
	require.Equal(t, "club-day-setup-and-pack-down-2", second.Slug)

	third, err := f.events.CreateEvent(ctx, org.ID, "owner@club.org", in)
	require.NoError(t, err)
	require.Equal(t, "club-day-setup-and-pack-down-3", third.Slug)
}

func TestCreateEventValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")

	before := t0.Add(time.Hour)

	cases := map[string]EventInput{
		"no title":          {StartsAt: t0},
		"no start":          {Title: "x"},
		"ends before start": {Title: "x", StartsAt: t0.Add(2 * time.Hour), EndsAt: &before},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.events.CreateEvent(ctx, org.ID, "owner@club.org", in)
			require.ErrorIs(t, err, ErrInvalidEvent)
		})
	}

	_, err := f.events.CreateEvent(ctx, org.ID, "nobody@club.org", EventInput{Title: "x", StartsAt: t0})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestDuplicateEventCopiesLists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")
	ev, bbq := f.eventWithList(t, org.ID, "owner@club.org", 4)

	_, err := f.events.CreateList(ctx, org.ID, ev.ID, "owner@club.org", ListInput{Title: "Canteen", MaxSlots: 2})
	require.NoError(t, err)
	_, err = f.events.SetListLocked(ctx, org.ID, bbq.ID, "owner@club.org", true)
	require.NoError(t, err)
	_, err = f.signups.Create(ctx, org.ID, ev.Slug, bbq.ID, SignupInput{Name: "Sam", Phone: "0400 111 222"})
	require.ErrorIs(t, err, ErrListLocked)

	next := ev.StartsAt.Add(7 * 24 * time.Hour)
	dup, lists, err := f.events.DuplicateEvent(ctx, org.ID, ev.ID, "owner@club.org", "", next)
	require.NoError(t, err)
	require.NotEqual(t, ev.ID, dup.ID)
	require.Equal(t, "Saturday Canteen (copy)", dup.Title)
	require.Equal(t, "saturday-canteen-copy", dup.Slug)
	require.Equal(t, next, dup.StartsAt)

	require.Len(t, lists, 2)
	require.Equal(t, "BBQ", lists[0].Title)
	require.Equal(t, 4, lists[0].MaxSlots)
	require.False(t, lists[0].IsLocked)
	require.Equal(t, "Canteen", lists[1].Title)

	page, err := f.events.PublicPage(ctx, org.ID, dup.Slug)
	require.NoError(t, err)
	require.Len(t, page.Lists, 2)
	for _, l := range page.Lists {
		require.Empty(t, l.Signups)
	}

	_, _, err = f.events.DuplicateEvent(ctx, org.ID, "missing", "owner@club.org", "", time.Time{})
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestReorderLists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")
	ev, a := f.eventWithList(t, org.ID, "owner@club.org", 0)

	b, err := f.events.CreateList(ctx, org.ID, ev.ID, "owner@club.org", ListInput{Title: "B"})
	require.NoError(t, err)
	c, err := f.events.CreateList(ctx, org.ID, ev.ID, "owner@club.org", ListInput{Title: "C"})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, []int{a.Position, b.Position, c.Position})

	lists, err := f.events.ReorderLists(ctx, org.ID, ev.ID, "owner@club.org", []string{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Equal(t, []string{c.ID, a.ID, b.ID}, listIDs(lists))

	t.Run("partial order is rejected and nothing moves", func(t *testing.T) {
		_, err := f.events.ReorderLists(ctx, org.ID, ev.ID, "owner@club.org", []string{b.ID, a.ID})
		require.ErrorIs(t, err, ErrInvalidOrder)

		_, err = f.events.ReorderLists(ctx, org.ID, ev.ID, "owner@club.org", []string{b.ID, b.ID, a.ID})
		require.ErrorIs(t, err, ErrInvalidOrder)

		page, err := f.events.PublicPage(ctx, org.ID, ev.Slug)
		require.NoError(t, err)
		var got []string
		for _, l := range page.Lists {
			got = append(got, l.List.ID)
		}
		require.Equal(t, []string{c.ID, a.ID, b.ID}, got)
	})
}

func TestPublicPageMasksContactDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")
	ev, list := f.eventWithList(t, org.ID, "owner@club.org", 0)

	_, err := f.signups.Create(ctx, org.ID, ev.Slug, list.ID, SignupInput{
		Name:  "Sam",
		Phone: "+61 400 111 222",
		Email: "sam@example.com",
	})
	require.NoError(t, err)

	page, err := f.events.PublicPage(ctx, org.ID, ev.Slug)
	require.NoError(t, err)
	require.Len(t, page.Lists, 1)
	require.Len(t, page.Lists[0].Signups, 1)

	su := page.Lists[0].Signups[0]
	require.Equal(t, "Sam", su.Name)
	require.Empty(t, su.Email)
	require.NotContains(t, su.Phone, "400111")
	require.True(t, len(su.Phone) > 4 && su.Phone[len(su.Phone)-4:] == "1222", su.Phone)

	_, err = f.events.PublicPage(ctx, org.ID, "no-such-event")
	require.ErrorIs(t, err, ErrEventNotFound)
}

func listIDs(lists []domain.SignupList) []string {
	ids := make([]string, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	return ids
}

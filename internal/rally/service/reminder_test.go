package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/store"
)

func TestReminderRun(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")

	// Starts in 48h: inside a 72h window.
	ev, list := f.eventWithList(t, org.ID, "owner@club.org", 0)
	phones := []string{"0400000001", "0400000002", "0400000003"}
	for i, p := range phones {
		_, err := f.signups.Create(ctx, org.ID, ev.Slug, list.ID, SignupInput{Name: "V" + string(rune('A'+i)), Phone: p})
		require.NoError(t, err)
	}

	// Outside the window.
	_, err := f.events.CreateEvent(ctx, org.ID, "owner@club.org", EventInput{Title: "Later", StartsAt: t0.Add(30 * 24 * time.Hour)})
	require.NoError(t, err)

	sms := &mockSMS{}
	sms.On("SendSMS", mock.Anything, "0400000002", mock.Anything).Return("", errors.New("bad number"))
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return("ok", nil)

	rs := &ReminderService{
		Store:   f.store,
		SMS:     sms,
		BaseURL: "https://rally.test",
		Window:  72 * time.Hour,
		Workers: 2,
		Now:     f.clock.Now,
	}

	report, err := rs.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, ReminderReport{Events: 1, Sent: 2, Failed: 1}, report)

	for _, p := range phones {
		logged, err := f.store.SMSMessages().ListByPhone(ctx, p)
		require.NoError(t, err)
		require.Len(t, logged, 1)
		require.Equal(t, domain.SMSKindReminder, logged[0].Kind)
		require.NotEmpty(t, logged[0].SignupID)
		require.Contains(t, logged[0].Body, "https://rally.test/signup/"+org.ID+"/"+ev.Slug)
	}

	report, err = rs.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, ReminderReport{}, report)
}

// racingEvents lets another run claim every due event right after it is
// listed, as an overlapping cron call would.
type racingEvents struct {
	store.Events
	now time.Time
}

func (e racingEvents) ListDueForReminder(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	events, err := e.Events.ListDueForReminder(ctx, from, to)
	for _, ev := range events {
		if err := e.Events.ClaimReminder(ctx, ev.ID, e.now); err != nil {
			return nil, err
		}
	}
	return events, err
}

type racingStore struct {
	store.Store
	now time.Time
}

func (s racingStore) Events() store.Events {
	return racingEvents{Events: s.Store.Events(), now: s.now}
}

func TestReminderRunSkipsClaimedEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")

	ev, list := f.eventWithList(t, org.ID, "owner@club.org", 0)
	_, err := f.signups.Create(ctx, org.ID, ev.Slug, list.ID, SignupInput{Name: "Vee", Phone: "0400000001"})
	require.NoError(t, err)

	sms := &mockSMS{}
	rs := &ReminderService{
		Store:  racingStore{Store: f.store, now: t0},
		SMS:    sms,
		Window: 72 * time.Hour,
		Now:    f.clock.Now,
	}

	report, err := rs.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, ReminderReport{}, report)
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)

	logged, err := f.store.SMSMessages().ListByPhone(ctx, "0400000001")
	require.NoError(t, err)
	require.Empty(t, logged)
}

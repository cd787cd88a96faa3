package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

func TestVolunteerManageFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")
	ev, list := f.eventWithList(t, org.ID, "owner@club.org", 0)

	mine, err := f.signups.Create(ctx, org.ID, ev.Slug, list.ID, SignupInput{Name: "Sam", Phone: "0400 111 222"})
	require.NoError(t, err)
	theirs, err := f.signups.Create(ctx, org.ID, ev.Slug, list.ID, SignupInput{Name: "Alex", Phone: "0400 999 888"})
	require.NoError(t, err)

	sms := &mockSMS{}
	var body string
	sms.On("SendSMS", mock.Anything, "0400111222", mock.Anything).
		Run(func(args mock.Arguments) { body = args.String(2) }).
		Return("msg-1", nil).Once()

	vs := &VolunteerService{Store: f.store, Tokens: f.tokens, SMS: sms, BaseURL: "https://rally.test", Now: f.clock.Now}
	require.NoError(t, vs.RequestLink(ctx, "0400-111-222"))
	sms.AssertExpectations(t)

	logged, err := f.store.SMSMessages().ListByPhone(ctx, "0400111222")
	require.NoError(t, err)
	require.Len(t, logged, 1)
	require.Equal(t, domain.SMSKindManageLink, logged[0].Kind)
	require.Equal(t, domain.SMSStatusSent, logged[0].Status)
	require.Equal(t, "msg-1", logged[0].ProviderID)

	raw := tokenFromLink(t, body)

	view, err := vs.ListSignups(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, "0400111222", view.Phone)
	require.Len(t, view.Signups, 1)
	require.Equal(t, mine.ID, view.Signups[0].ID)
	require.Equal(t, ev.Title, view.Signups[0].EventTitle)

	confirmed, err := vs.Confirm(ctx, raw, mine.ID)
	require.NoError(t, err)
	require.NotNil(t, confirmed.ConfirmedAt)
	first := *confirmed.ConfirmedAt

	f.clock.Advance(time.Hour)
	again, err := vs.Confirm(ctx, raw, mine.ID)
	require.NoError(t, err)
	require.Equal(t, first, *again.ConfirmedAt)

	_, err = vs.Confirm(ctx, raw, theirs.ID)
	require.ErrorIs(t, err, ErrSignupNotFound)

	f.clock.Advance(DefaultManageLinkTTL)
	_, err = vs.ListSignups(ctx, raw)
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestVolunteerRequestLinkUnknownPhoneSendsNothing(t *testing.T) {
	f := newFixture(t)
	sms := &mockSMS{}
	vs := &VolunteerService{Store: f.store, Tokens: f.tokens, SMS: sms, Now: f.clock.Now}

	require.NoError(t, vs.RequestLink(context.Background(), "0400 000 000"))
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)

	require.ErrorIs(t, vs.RequestLink(context.Background(), "12"), ErrInvalidPhone)
}

func TestVolunteerRequestLinkRecordsFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	org := f.org(t, "owner@club.org")
	ev, list := f.eventWithList(t, org.ID, "owner@club.org", 0)
	_, err := f.signups.Create(ctx, org.ID, ev.Slug, list.ID, SignupInput{Name: "Sam", Phone: "0400111222"})
	require.NoError(t, err)

	sms := &mockSMS{}
	sms.On("SendSMS", mock.Anything, "0400111222", mock.Anything).Return("", errors.New("throttled"))

	vs := &VolunteerService{Store: f.store, Tokens: f.tokens, SMS: sms, Now: f.clock.Now}
	require.NoError(t, vs.RequestLink(ctx, "0400111222"))

	logged, err := f.store.SMSMessages().ListByPhone(ctx, "0400111222")
	require.NoError(t, err)
	require.Len(t, logged, 1)
	require.Equal(t, domain.SMSStatusFailed, logged[0].Status)
	require.Equal(t, "throttled", logged[0].Error)
}

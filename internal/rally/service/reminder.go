package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/notify"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

const (
	DefaultReminderWindow  = 24 * time.Hour
	DefaultReminderWorkers = 4
)

// ReminderService texts every volunteer of events starting within Window.
// Each event is claimed once before any message goes out; failed sends are
// recorded and not retried.
type ReminderService struct {
	Store store.Store
	SMS   notify.SMSSender

	BaseURL string
	Window  time.Duration
	Workers int
	Now     func() time.Time
}

type ReminderReport struct {
	Events int
	Sent   int
	Failed int
}

// Run sends the reminders that are due now.
func (s *ReminderService) Run(ctx context.Context) (ReminderReport, error) {
	log := slogx.FromContext(ctx)

	window := s.Window
	if window <= 0 {
		window = DefaultReminderWindow
	}
	now := clock(s.Now)

	events, err := s.Store.Events().ListDueForReminder(ctx, now, now.Add(window))
	if err != nil {
		return ReminderReport{}, fmt.Errorf("list due events: %w", err)
	}

	var report ReminderReport
	for _, ev := range events {
		// Claim before sending so an overlapping run skips the event.
		err := s.Store.Events().ClaimReminder(ctx, ev.ID, now)
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("event reminder already claimed", slog.String("event_id", ev.ID))
			continue
		}
		if err != nil {
			return report, fmt.Errorf("claim event reminder: %w", err)
		}

		sent, failed, err := s.remindEvent(ctx, ev, now)
		if err != nil {
			log.Error("failed to send event reminders",
				slog.String("event_id", ev.ID),
				slog.Any("error", err),
			)
			return report, err
		}
		report.Events++
		report.Sent += sent
		report.Failed += failed
	}

	log.Info("reminder run completed",
		slog.Int("events", report.Events),
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *ReminderService) remindEvent(ctx context.Context, ev domain.Event, now time.Time) (int, int, error) {
	lists, err := s.Store.Lists().ListByEvent(ctx, ev.ID)
	if err != nil {
		return 0, 0, err
	}
	titles := make(map[string]string, len(lists))
	for _, l := range lists {
		titles[l.ID] = l.Title
	}

	signups, err := s.Store.Signups().ListByEvent(ctx, ev.ID)
	if err != nil {
		return 0, 0, err
	}

	workers := s.Workers
	if workers <= 0 {
		workers = DefaultReminderWorkers
	}

	var sent, failed atomic.Int64
	p := pool.New().WithMaxGoroutines(workers)
	for _, su := range signups {
		msg := domain.SMSMessage{
			SignupID: su.ID,
			Phone:    su.Phone,
			Body:     s.reminderBody(ev, titles[su.ListID], su.Name),
			Kind:     domain.SMSKindReminder,
		}
		p.Go(func() {
			if err := sendLogged(ctx, s.SMS, s.Store.SMSMessages(), msg, now); err != nil {
				slogx.FromContext(ctx).Warn("reminder sms failed",
					slog.String("signup_id", msg.SignupID),
					slog.Any("error", err),
				)
				failed.Add(1)
				return
			}
			sent.Add(1)
		})
	}
	p.Wait()

	return int(sent.Load()), int(failed.Load()), nil
}

func (s *ReminderService) reminderBody(ev domain.Event, listTitle, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, a reminder that you're down for %s", name, listTitle)
	fmt.Fprintf(&b, " at %s on %s", ev.Title, ev.StartsAt.Format("Mon 2 Jan 15:04 MST"))
	if ev.Location != "" {
		fmt.Fprintf(&b, ", %s", ev.Location)
	}
	fmt.Fprintf(&b, ". Details: %s/signup/%s/%s",
		strings.TrimSuffix(s.BaseURL, "/"), ev.OrganizationID, ev.Slug)
	return b.String()
}

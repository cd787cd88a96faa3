package service

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTokenRetention is how long spent and expired tokens and invites are
// kept before being purged.
const DefaultTokenRetention = 7 * 24 * time.Hour

// HousekeepingService periodically purges expired tokens and invites.
type HousekeepingService struct {
	Tokens    *TokenService
	Invites   *InviteService
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour and a non-positive retention to
// DefaultTokenRetention.
func NewHousekeepingService(
	tokens *TokenService,
	invites *InviteService,
	logger *slog.Logger,
	interval, retention time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = DefaultTokenRetention
	}

	return &HousekeepingService{
		Tokens:    tokens,
		Invites:   invites,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs cleanup now and then every Interval until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one purge pass. Each step is independent; a failure in
// one does not stop the other. It returns the number of rows removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	cutoff := clock(s.Tokens.Now).Add(-s.Retention)
	s.Logger.Info("starting housekeeping cleanup", "cutoff", cutoff)

	var total int64

	if n, err := s.Tokens.PurgeExpired(ctx, cutoff); err != nil {
		s.Logger.Error("failed to purge expired tokens", "error", err)
	} else {
		s.Logger.Debug("purged expired tokens", "count", n)
		total += n
	}

	if n, err := s.Invites.Store.Memberships().DeleteExpiredPending(ctx, cutoff); err != nil {
		s.Logger.Error("failed to purge expired invites", "error", err)
	} else {
		s.Logger.Debug("purged expired invites", "count", n)
		total += n
	}

	s.Logger.Info("housekeeping cleanup completed", "deleted", total)
	return total
}

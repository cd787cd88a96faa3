package app

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/rally/internal/rally/service"
)

// Migrate applies pending migrations and exits.
func Migrate(cfg Config, logger *slog.Logger) error {
	db, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	return db.Close()
}

// Purge runs a single housekeeping pass and reports how many rows were
// removed.
func Purge(ctx context.Context, cfg Config, logger *slog.Logger) (int64, error) {
	db, err := OpenStore(cfg, logger)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tokens := &service.TokenService{Store: db}
	invites := &service.InviteService{Store: db}
	hk := service.NewHousekeepingService(tokens, invites, logger, cfg.HousekeepingInterval, cfg.TokenRetention)
	return hk.Cleanup(ctx), nil
}

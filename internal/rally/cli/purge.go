package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/rally/internal/rally/app"
)

// NewPurgeCommand creates the purge command, a one-off housekeeping pass
// for deployments that run it from a scheduler instead of in-process.
func NewPurgeCommand() *cobra.Command {
	var (
		dbFile    string
		retention time.Duration
	)

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete expired tokens and invites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if dbFile != "" {
				cfg.DatabaseFile = dbFile
			}
			if retention > 0 {
				cfg.TokenRetention = retention
			}

			n, err := app.Purge(cmd.Context(), cfg, app.NewLogger(cfg))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d rows\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbFile, "db", "", "database file (overrides RALLY_DATABASE_FILE)")
	cmd.Flags().DurationVar(&retention, "retention", 0, "keep spent tokens this long (overrides TOKEN_RETENTION)")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/rally/internal/rally/app"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	var dbFile string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if dbFile != "" {
				cfg.DatabaseFile = dbFile
			}

			if err := app.Migrate(cfg, app.NewLogger(cfg)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s\n", cfg.DatabaseFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbFile, "db", "", "database file (overrides RALLY_DATABASE_FILE)")

	return cmd
}

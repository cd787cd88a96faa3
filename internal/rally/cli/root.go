package cli

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/rally/internal/rally/app"
)

// NewRootCommand creates the root command for the rally binary.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rally",
		Short:         "Rally - volunteer rosters for community clubs",
		Long:          "Rally serves the organization, event and signup API and runs its maintenance tasks.",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewPurgeCommand())

	return cmd
}

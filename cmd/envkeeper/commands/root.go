package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// envFile is the optional explicit dotenv file shared by all subcommands.
var envFile string

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "envkeeper",
		Short: "envkeeper - validate dotenv environments before they bite",
		Long: `envkeeper loads the layered dotenv files for the current deployment mode
(.env, .env.<mode>, .env.local, .env.<mode>.local), overlays the live
process environment, and validates the result against declared rules.

The deployment mode comes from APP_ENV and defaults to "development".
Process environment variables always win over file-derived values.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "f", "", "explicit dotenv file (replaces the layered defaults)")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newPrintCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}

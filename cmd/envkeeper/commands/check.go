package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	envkeeper "github.com/MKhiriev/go-env-keeper"
	"github.com/MKhiriev/go-env-keeper/internal/logger"
	"github.com/MKhiriev/go-env-keeper/schema"
)

func newCheckCommand() *cobra.Command {
	var (
		requires        []string
		allowMissingDev bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the merged environment against declared rules",
		Long: `Validate the layered dotenv files plus the live process environment
against --require rules. On failure a per-field report is printed and the
process exits 1 (or 0 with --allow-missing-dev in development mode).`,
		Example: `  # Require a database URL and a long secret
  envkeeper check --require DATABASE_URL:url --require API_SECRET:min=32

  # Check one explicit file, tolerating gaps while developing
  envkeeper check -f .env.ci --require PORT:int --allow-missing-dev`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := ParseRules(requires)
			if err != nil {
				return err
			}

			keeper := envkeeper.New[schema.Values](logger.NewLogger("envkeeper-cli"))
			// On validation failure the reporter prints and exits; only
			// load-stage errors reach this return.
			values, err := keeper.Initialize(schema.Server(fields), envkeeper.Options{
				ConfigPath:                envFile,
				AllowMissingInDevelopment: allowMissingDev,
			})
			if err != nil {
				return err
			}

			fmt.Printf("environment OK (%d variables validated)\n", len(values))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&requires, "require", nil, "field rule NAME[:TYPE[:RULES]]; '?' suffix on NAME marks it optional")
	cmd.Flags().BoolVar(&allowMissingDev, "allow-missing-dev", false, "tolerate an invalid environment in development mode")

	return cmd
}

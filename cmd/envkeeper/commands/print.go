package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/MKhiriev/go-env-keeper/dotenv"
)

func newPrintCommand() *cobra.Command {
	var showValues bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the merged environment mapping",
		Long: `Print every key of the merged mapping (dotenv layers overlaid with the
process environment) in sorted order. Values are redacted unless
--show-values is given, so secrets stay off terminals by default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileVars, err := dotenv.Load(envFile)
			if err != nil {
				return err
			}

			merged, err := dotenv.Merge(fileVars)
			if err != nil {
				return err
			}

			keys := maps.Keys(merged)
			slices.Sort(keys)
			for _, key := range keys {
				if showValues {
					fmt.Printf("%s=%s\n", key, merged[key])
				} else {
					fmt.Printf("%s=********\n", key)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showValues, "show-values", false, "print variable values instead of redacting them")

	return cmd
}

package commands

import (
	"errors"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-env-keeper/dotenv"
	"github.com/MKhiriev/go-env-keeper/internal/logger"
	"github.com/MKhiriev/go-env-keeper/schema"
)

func newWatchCommand() *cobra.Command {
	var requires []string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate the environment whenever a dotenv layer changes",
		Long: `Watch the working directory (or the explicit file's directory) and
re-run the check every time a dotenv layer is written. Validation failures are
logged, not fatal; the watcher keeps running until interrupted.`,
		Example: `  envkeeper watch --require DATABASE_URL:url --require API_SECRET:min=32`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := ParseRules(requires)
			if err != nil {
				return err
			}

			log := logger.NewLogger("envkeeper-watch")
			s := schema.Server(fields)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			watchDir := "."
			watched := dotenv.Candidates(dotenv.Mode())
			if envFile != "" {
				watchDir = filepath.Dir(envFile)
				watched = []string{filepath.Base(envFile)}
			}
			if err := watcher.Add(watchDir); err != nil {
				return err
			}

			check := func() {
				fileVars, err := dotenv.Load(envFile)
				if err != nil {
					log.Error().Err(err).Msg("error loading env files")
					return
				}

				merged, err := dotenv.Merge(fileVars)
				if err != nil {
					log.Error().Err(err).Msg("error merging environment")
					return
				}

				if _, err := s.Parse(merged); err != nil {
					var verr *schema.Error
					if errors.As(err, &verr) {
						for _, issue := range verr.Issues {
							log.Warn().
								Str("field", issue.Path).
								Str("kind", string(issue.Kind)).
								Msg(issue.Message)
						}
						log.Warn().Int("issues", len(verr.Issues)).Msg("environment invalid")
						return
					}
					log.Error().Err(err).Msg("validation failed")
					return
				}

				log.Info().Msg("environment OK")
			}

			check()

			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
						continue
					}
					if !slices.Contains(watched, filepath.Base(event.Name)) {
						continue
					}
					log.Debug().Str("file", event.Name).Msg("layer changed")
					check()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.Error().Err(err).Msg("watch error")
				}
			}
		},
	}

	cmd.Flags().StringArrayVar(&requires, "require", nil, "field rule NAME[:TYPE[:RULES]]; '?' suffix on NAME marks it optional")

	return cmd
}

package main

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/config"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/logging"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/output"
)

func newGenerateCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the metrics workbook",
		Long: `Runs the four metric queries against the database and writes
CustomersPerCountry, 100SongsBySales, EntireCollArtistPrice and SongsByGenre
to the output workbook.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logCfg := cfg.Logging()
			logCfg.Output = cmd.ErrOrStderr()
			logger := logging.New(logCfg)
			if cfg.File != "" {
				logger.Debug().Str("config", cfg.File).Msg("config loaded")
			}

			result, err := chinookreport.Generate(logger.WithContext(cmd.Context()), cfg.ReportOptions())
			if err != nil {
				logFailure(logger, err)
				return err
			}

			output.WriteResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default: ./chinookreport.yaml if present)")
	config.BindFlags(cmd.Flags())
	return cmd
}

// logFailure records the failing stage of a generation error.
func logFailure(logger zerolog.Logger, err error) {
	event := logger.Error().Err(err)

	var dsErr *chinookreport.DataSourceError
	var wErr *chinookreport.WriteError
	switch {
	case errors.As(err, &dsErr):
		event = event.Str("stage", dsErr.Stage)
		if dsErr.Query != "" {
			event = event.Str("query", dsErr.Query)
		}
	case errors.As(err, &wErr):
		event = event.Str("stage", wErr.Stage)
		if wErr.Sheet != "" {
			event = event.Str("sheet", wErr.Sheet)
		}
	}
	event.Msg("report generation failed")
}

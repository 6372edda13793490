// Package cli implements the carbonwise command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/config"
)

// NewRootCmd creates the root Cobra command. It wires logging and the
// serve and estimate subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "carbonwise",
		Short:   "Personal carbon footprint estimator",
		Long:    "CarbonWise: estimate a household's monthly and yearly carbon footprint and suggest reductions",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(NewServeCmd(), NewEstimateCmd())

	return cmd
}

const rootCmdExample = `  # Start the HTTP API on the configured port
  carbonwise serve --config carbonwise.yaml

  # Estimate a profile stored on disk
  carbonwise estimate --input profile.yaml

  # Pipe a JSON profile and get JSON back
  cat profile.json | carbonwise estimate --input - --output json

  # Try a what-if without editing the file
  carbonwise estimate --input profile.yaml --set carMiles=200 --set foodType=vegetarian`

// setupLogging attaches a stderr logger to the command context. --debug
// forces debug level with console output; otherwise CARBONWISE_LOG_LEVEL
// and CARBONWISE_LOG_FORMAT apply.
func setupLogging(cmd *cobra.Command) {
	level, format := "warn", "console"
	if v := os.Getenv(config.EnvLogLevel); v != "" {
		level = v
	}
	if v := os.Getenv(config.EnvLogFormat); v != "" {
		format = v
	}
	if debugEnabled(cmd) {
		level, format = "debug", "console"
	}

	logger := config.NewLogger(level, format, cmd.ErrOrStderr()).
		With().Str("component", "cli").Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}

// loggerFrom returns the logger installed by setupLogging, or a disabled
// logger when the command runs without the root.
func loggerFrom(cmd *cobra.Command) zerolog.Logger {
	return *zerolog.Ctx(cmd.Context())
}

func debugEnabled(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool("debug")
	return debug
}

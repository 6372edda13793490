package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonwise/internal/config"
	"github.com/rshade/carbonwise/internal/server"
)

// ServeParams holds the flags of the serve command.
type ServeParams struct {
	ConfigPath string
	Port       int
	GRPCPort   int
}

// NewServeCmd creates the "serve" subcommand, which runs the HTTP API (and
// the gRPC service when a gRPC port is set) until interrupted.
func NewServeCmd() *cobra.Command {
	var params ServeParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the CarbonWise API server",
		Long: `Serve POST /api/calculate, GET /api/health and GET /metrics over HTTP,
and carbonwise.v1.FootprintService over gRPC when --grpc-port (or
CARBONWISE_GRPC_PORT) is non-zero.

Settings are read from built-in defaults, then the YAML file named by
--config or CARBONWISE_CONFIG, then .env and the environment. Flags win.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.ConfigPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().IntVar(&params.Port, "port", 0, "HTTP port (overrides config and PORT)")
	cmd.Flags().IntVar(&params.GRPCPort, "grpc-port", 0, "gRPC port, 0 disables (overrides config)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, params ServeParams) error {
	cfg, err := config.Load(params.ConfigPath, loggerFrom(cmd))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = params.Port
	}
	if cmd.Flags().Changed("grpc-port") {
		cfg.Server.GRPCPort = params.GRPCPort
	}
	if debugEnabled(cmd) {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := config.NewLoggerFromConfig(cfg.Logging, cmd.ErrOrStderr())
	logger.Info().
		Int("port", cfg.Server.Port).
		Int("grpc_port", cfg.Server.GRPCPort).
		Strs("cors_origins", cfg.CORS.AllowedOrigins).
		Msg("starting server")

	return server.New(cfg, nil, logger).Run(ctx)
}

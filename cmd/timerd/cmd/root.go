package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/timer-endpoints/internal/config"
	"github.com/oshokin/timer-endpoints/internal/service/timerd"
	"github.com/oshokin/timer-endpoints/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the level from the configuration file.
	logLevel string

	// rootCmd represents the base command running the timer endpoints.
	rootCmd = &cobra.Command{
		Use:   "timerd",
		Short: "Run stopwatch and countdown timer endpoints with an operator console.",
		Long: `Registers the configured timer endpoints (by default "stopwatch" and "countdown")
and opens an interactive console to drive them.

Each endpoint accepts one-character commands: s=start, r=reset, l<seconds>=load,
p=pause, c=continue. A read after a write returns a status block with the state,
the counter, the accumulated pause time and the total, once per write.

Without a settings file the defaults are used: 100 ticks per second, both endpoints,
no metrics server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &timerd.Options{
				ConfigPath:    configPath,
				RequireConfig: cmd.Flags().Changed("config"),
				LogLevel:      logLevel,
			}

			return timerd.Run(ctx, options)
		},
	}
)

// Execute runs the timerd CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")
}

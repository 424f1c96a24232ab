package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/timer-endpoints/internal/config"
)

// configCmd writes a settings file with default values.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write a settings file with default values.",
	Long: `Writes the default settings (tick rate, log level, status buffer limit and the
stopwatch and countdown endpoints) to the path given by --config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.Save(configPath, config.Default()); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", configPath)

		return nil
	},
}

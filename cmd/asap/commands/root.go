package commands

import (
	"os"

	"github.com/asaplab/asap/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// Global flags
var configPath string

// rootCmd runs the API server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "asap",
	Short: "ASAP - lab research enrollment portal",
	Long: `ASAP lets professors publish research sessions and students enroll in them.

Commands:
  serve    - Run the HTTP API (default)
  migrate  - Apply pending database migrations
  seed     - Create demo accounts and a sample research`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to the YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

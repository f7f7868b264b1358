package commands

import (
	"github.com/asaplab/asap/internal/bootstrap"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply the SQL migrations compiled into the binary. Already applied
versions are recorded in schema_migrations and skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		pool, err := bootstrap.ConnectDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return err
		}
		defer pool.Close()

		return bootstrap.RunMigrations(cmd.Context(), pool, lgr)
	},
}

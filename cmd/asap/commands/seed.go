package commands

import (
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/bootstrap"
	"github.com/asaplab/asap/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo accounts and a sample research",
	Long: `Migrate the database, then create an active professor (` + seed.DemoProfEmail + `),
an active student (` + seed.DemoStudentEmail + `) and one research with a unit.
Existing demo accounts are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		pool, err := bootstrap.SetupDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return err
		}
		defer pool.Close()

		return seed.CreateDemoData(cmd.Context(), repositories.NewRepositories(pool), lgr)
	},
}

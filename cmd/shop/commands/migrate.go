package commands

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create the categories, products and cart tables if they are missing and
add any new columns. Existing rows are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		r, err := openRepo(ctx)
		if err != nil {
			return err
		}
		defer closeDB(r.DB)

		if err := r.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("migrate_done", "driver", cfg.DBDriver)
		return nil
	},
}

package cli

import (
	"fmt"

	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/migrations"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			n, err := database.Migrate(cmd.Context(), db, migrations.FS, args[0])
			if err != nil {
				return err
			}

			logger.Info("migrations completed", "direction", args[0], "files", n)
			return nil
		},
	}
}

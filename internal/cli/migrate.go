package cli

import (
	"github.com/KotVCompe/Desert-APP/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeFn, err := open(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := models.AutoMigrate(a.db.WithContext(commandContext(cmd))); err != nil {
				a.logger.Error("Failed to migrate schema", zap.Error(err))
				return err
			}
			a.logger.Info("Schema is up to date")
			return nil
		},
	}
}

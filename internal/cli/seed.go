package cli

import (
	"github.com/KotVCompe/Desert-APP/internal/password"
	"github.com/KotVCompe/Desert-APP/internal/seed"
	"github.com/KotVCompe/Desert-APP/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeeder(a *app) *seed.Seeder {
	return seed.NewSeeder(
		models.NewCategoriesRepository(a.db),
		models.NewProductsRepository(a.db),
		models.NewUsersRepository(a.db),
		password.NewBcryptHasher(password.DefaultCost),
		a.logger,
	)
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var (
		fixturesPath string
		migrate      bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Wipe the catalog and load the reference dataset",
		Long:  "Deletes all product images, products, categories and users, then creates the reference categories, the administrator account, products and product images",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeFn, err := open(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := a.cfg.CheckDestructive(); err != nil {
				return err
			}

			if fixturesPath == "" {
				fixturesPath = a.cfg.Seed.FixturesPath
			}
			fixtures, err := seed.LoadFixtures(fixturesPath)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			if migrate {
				if err := models.AutoMigrate(a.db.WithContext(ctx)); err != nil {
					return err
				}
			}

			summary, err := newSeeder(a).Run(ctx, fixtures, a.cfg.Seed.AdminPassword)
			if err != nil {
				return err
			}

			a.logger.Info("Seed summary",
				zap.String("run_id", summary.RunID),
				zap.Int("categories", len(summary.Categories)),
				zap.String("admin", summary.Admin.Email),
				zap.Int("products", len(summary.Products)),
				zap.Int64("product_images", summary.ProductImages),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML fixtures file (defaults to the built-in dataset)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before seeding")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all product images, products, categories and users",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeFn, err := open(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := a.cfg.CheckDestructive(); err != nil {
				return err
			}
			if err := newSeeder(a).Reset(commandContext(cmd)); err != nil {
				a.logger.Error("Reset failed", zap.String("stage", seed.StageReset), zap.Error(err))
				return err
			}
			a.logger.Info("Cleared catalog data")
			return nil
		},
	}
}

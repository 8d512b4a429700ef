package cli

import (
	"context"
	"time"

	"github.com/KotVCompe/Desert-APP/internal/config"
	"github.com/KotVCompe/Desert-APP/internal/database"
	"github.com/KotVCompe/Desert-APP/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type rootOptions struct {
	configPath  string
	databaseURL string
}

// NewRootCmd builds the dessertshop command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "dessertshop",
		Short:         "Dessert shop database tooling",
		Long:          "Creates the dessert shop schema and loads its reference catalog into a development database",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "database URL (postgres://... or sqlite://...), overrides config")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newResetCmd(opts),
		newSeedCmd(opts),
		newCatalogCmd(opts),
		newCategoriesCmd(opts),
	)
	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// app holds what every command needs once configuration is resolved.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

// open loads configuration, builds the logger and connects to the database.
// The returned close func must always be called; it releases the connection
// pool and flushes the logger.
func open(opts *rootOptions) (*app, func(), error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.databaseURL != "" {
		cfg.DatabaseURL = opts.databaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	appLogger := logger.NewZapLogger(logConfig)

	db, err := database.Open(database.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	}, appLogger)
	if err != nil {
		appLogger.Error("Could not connect to database", zap.Error(err))
		_ = appLogger.Sync()
		return nil, nil, err
	}
	appLogger.Debug("Connected to database", zap.String("dialect", db.Dialector.Name()))

	closeFn := func() {
		if err := database.Close(db); err != nil {
			appLogger.Warn("Failed to close database", zap.Error(err))
		}
		_ = appLogger.Sync()
	}
	return &app{cfg: cfg, logger: appLogger, db: db}, closeFn, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package cmd

import (
	"fmt"

	"SwipeEstate/config"
	"SwipeEstate/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func loadServerConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, service string) (*zap.Logger, error) {
	logger, err := utils.NewLogger(cfg.Log.Level, cfg.Log.Format, service)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// openDatabase connects and brings the schema up to date.
func openDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := config.ConnectDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info("database ready", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

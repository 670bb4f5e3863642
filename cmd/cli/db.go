package cli

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/resguardo/resguardo/internal/config"
	"github.com/resguardo/resguardo/internal/infrastructure/monitoring"
	"github.com/resguardo/resguardo/internal/infrastructure/persistence/postgres"
	"github.com/resguardo/resguardo/pkg/logger"
)

// sqlitePath switches the CLI to a local sqlite file, useful for trying the
// console without a postgres instance.
var sqlitePath string

func init() {
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "use a local sqlite database file instead of the configured postgres")
}

func openDatabase(ctx context.Context, log logger.Logger) (*gorm.DB, error) {
	if sqlitePath != "" {
		db, err := gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		return db, nil
	}

	cfg, err := config.LoadConfig(log)
	if err != nil {
		return nil, err
	}
	return postgres.NewDB(ctx, &cfg.Database, log)
}

func cliLogger() logger.Logger {
	log, err := monitoring.NewZapLogger(&config.LogConfig{Level: "warn", Format: "console"})
	if err != nil {
		return logger.NewNoopLogger()
	}
	return log
}

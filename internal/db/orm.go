package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/logging"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table the bot owns, in migration order.
var Models = []interface{}{
	&gormModels.Vehicle{},
	&gormModels.UserStats{},
	&gormModels.GuildSettings{},
	&gormModels.RaceResult{},
	&gormModels.RaceClaim{},
	&gormModels.TwitchSettings{},
	&gormModels.StreamerWatch{},
}

// InitSQLiteORM opens (creating if needed) the SQLite database at path.
func InitSQLiteORM(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_busy_timeout=5000&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logging.Info("Connected to SQLite via GORM", "path", path)
	return db, nil
}

// InitPostgresORM connects to Postgres, retrying while the server comes up.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			logging.Info("Connected to Postgres via GORM")
			return db, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}

// Open selects the driver named by driver ("sqlite" or "postgres").
func Open(driver, path, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return InitSQLiteORM(path)
	case "postgres":
		return InitPostgresORM(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates or updates every table in Models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

package testutil

import (
	"testing"

	"github.com/pinkslip-racing/pinkslip/internal/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory SQLite database with every table migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// each new connection to :memory: would see an empty database
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("Failed to get sql pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return database
}

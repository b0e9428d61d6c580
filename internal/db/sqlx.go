package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// NewSQLX wraps the pool GORM already holds so hand-written read queries
// share connections with the repositories.
func NewSQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql pool: %w", err)
	}

	// sqlx only uses the driver name to pick a bind style
	driverName := "sqlite3"
	if db.Dialector.Name() == "postgres" {
		driverName = "postgres"
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}

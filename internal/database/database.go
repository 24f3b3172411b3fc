// Package database opens and owns the GORM connection backing the store.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// Manager handles database operations.
type Manager struct {
	db *gorm.DB
}

// NewManager opens a connection for the configured driver. The monitor is
// the single writer, so the SQLite connection pool is capped at one open
// connection to keep the file lock uncontended.
func NewManager(config *Config) (*Manager, error) {
	gormCfg := &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch config.Driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true, // keeps the driver usable behind transaction-pooled connections
		}), gormCfg)
	default:
		db, err = gorm.Open(sqlite.Open(config.Path), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if config.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return &Manager{db: db}, nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the underlying connection. Called once at shutdown.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}
	return sqlDB.Close()
}

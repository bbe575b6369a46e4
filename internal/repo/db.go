// Package repo implements the quote store, the persistence leaf of the
// application, backed by GORM. This file contains database bootstrapping
// helpers for SQLite (pure Go driver) and the schema migration steps.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
)

// Option customizes OpenSQLite.
type Option func(*openConfig)

type openConfig struct {
	logLevel logger.LogLevel
	tracing  bool
}

func defaultOpenConfig() openConfig {
	return openConfig{logLevel: logger.Silent}
}

// WithLogLevel sets the GORM logger level (default: silent).
func WithLogLevel(l logger.LogLevel) Option {
	return func(c *openConfig) { c.logLevel = l }
}

// WithTracing installs the GORM OpenTelemetry plugin so every statement
// becomes a span under the caller's context.
func WithTracing() Option {
	return func(c *openConfig) { c.tracing = true }
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string, opts ...Option) (*gorm.DB, error) {
	cfg := defaultOpenConfig()
	for _, o := range opts {
		o(&cfg)
	}

	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.logLevel),
	})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if cfg.tracing {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, fmt.Errorf("install tracing plugin: %w", err)
		}
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

// migrations are applied in order, once each, every step in its own
// transaction.
var migrations = []migration{
	{
		version: 1,
		name:    "create quotes",
		up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&domain.QuoteEntity{})
		},
	},
	{
		// Older builds stored a placeholder word for "no category".
		version: 2,
		name:    "clear legacy category placeholder",
		up: func(tx *gorm.DB) error {
			return tx.Model(&domain.QuoteEntity{}).
				Where("category = ?", domain.LegacyUncategorized).
				Update("category", "").Error
		},
	},
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.SchemaMigration{}); err != nil {
		return err
	}
	for _, m := range migrations {
		err := db.Transaction(func(tx *gorm.DB) error {
			var applied int64
			if err := tx.Model(&domain.SchemaMigration{}).Where("version = ?", m.version).Count(&applied).Error; err != nil {
				return err
			}
			if applied > 0 {
				return nil
			}
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&domain.SchemaMigration{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied migration version, 0 if none.
func SchemaVersion(db *gorm.DB) (int, error) {
	var v struct{ Version int }
	err := db.Model(&domain.SchemaMigration{}).Select("COALESCE(MAX(version), 0) AS version").Scan(&v).Error
	return v.Version, err
}

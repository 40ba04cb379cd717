// Package repo implements the data persistence layer for the chatbot,
// backed by GORM. This file contains connection bootstrapping for SQLite
// (pure Go driver) and PostgreSQL, tracing, and schema migrations.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// Supported SQL dialects.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// gormConfig keeps GORM quiet except for warnings and slow queries.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
}

// Open picks the driver from the DSN: postgres:// URLs and key/value
// strings go to PostgreSQL, everything else is treated as a SQLite path
// or file: URI.
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("repo: empty dsn")
	}
	switch DetectDialect(dsn) {
	case DialectPostgres:
		return openPostgres(dsn)
	default:
		return OpenSQLite(dsn)
	}
}

// DetectDialect infers the SQL dialect of a DSN.
func DetectDialect(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case strings.Contains(lower, "host=") && strings.Contains(lower, "dbname="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

func openPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("repo: open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("repo: ping postgres: %w", err)
	}
	return db, nil
}

// EnableTracing registers the OpenTelemetry GORM plugin so each query is
// recorded as a span under the request's trace.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin())
}

// AutoMigrate creates or updates all chatbot tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.QARule{},
		&domain.ChatbotConfig{},
		&domain.ChatTurn{},
		&domain.Admin{},
		&domain.Idempotency{},
	)
}

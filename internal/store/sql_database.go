package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/ebolotov/itemvault/internal/config"
	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/migrations"
)

// DB wraps a database/sql connection together with the driver it was opened
// with. The driver determines the placeholder dialect and how constraint
// violations are recognised.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens a database connection for the configured driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// placeholder returns the squirrel placeholder format matching the driver:
// $1-style for PostgreSQL, ?-style for SQLite.
func (db *DB) placeholder() sq.PlaceholderFormat {
	if db.driver == config.DriverSQLite {
		return sq.Question
	}

	return sq.Dollar
}

// supportsReturning reports whether the driver supports INSERT ... RETURNING.
// The SQLite path falls back to LastInsertId instead.
func (db *DB) supportsReturning() bool {
	return db.driver == config.DriverPostgres
}

// isUniqueViolation reports whether err is a unique constraint violation of
// the underlying driver.
func (db *DB) isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

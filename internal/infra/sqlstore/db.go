package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"word-quiz/internal/domain"
)

// DB wraps the database connection with dialect support
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects, pings and configures the database. Every failure wraps domain.ErrStoreUnavailable.
func Open(ctx context.Context, dialect Dialect, config DialectConfig) (*DB, error) {
	dsn, err := dialect.DSN(config)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dsn: %w", domain.ErrStoreUnavailable, err)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", domain.ErrStoreUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", domain.ErrStoreUnavailable, err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to configure connection: %w", domain.ErrStoreUnavailable, err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

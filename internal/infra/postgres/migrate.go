package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"word-quiz/internal/domain"
	pgmigrations "word-quiz/internal/infra/postgres/migrations"
)

// Migrate applies pending schema migrations and returns the names of the ones it ran.
func Migrate(ctx context.Context, dsn string) ([]string, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	// Init is the first round trip, so an unreachable server surfaces here.
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("%w: init migrations: %w", domain.ErrStoreUnavailable, err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, err
	}
	if group == nil || group.IsZero() {
		return nil, nil
	}
	applied := make([]string, 0, len(group.Migrations))
	for _, m := range group.Migrations {
		applied = append(applied, m.Name)
	}
	return applied, nil
}

package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"word-quiz/internal/config"
	"word-quiz/internal/infra/postgres"
	"word-quiz/internal/logging"
)

// NewMigrateCmd applies score store migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run score store migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	return runMigrationsWithConfig(ctx, cfg, logger)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	switch cfg.Store.Driver {
	case "memory":
		logger.Info("memory store needs no migrations")
		return nil
	case "postgres":
		applied, err := postgres.Migrate(ctx, cfg.PostgresURL())
		if err != nil {
			return err
		}
		logger.Info("migrations applied", slog.String("driver", "postgres"), slog.Any("migrations", applied))
		return nil
	}

	db, err := openSQLStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.RunMigrations(ctx, logger); err != nil {
		return err
	}
	logger.Info("migrations applied", slog.String("driver", cfg.Store.Driver))
	return nil
}

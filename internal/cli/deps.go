package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"word-quiz/internal/app"
	"word-quiz/internal/config"
	"word-quiz/internal/infra/assets"
	"word-quiz/internal/infra/memory"
	"word-quiz/internal/infra/postgres"
	redisstore "word-quiz/internal/infra/redis"
	"word-quiz/internal/infra/sqlstore"
	"word-quiz/internal/logging"
)

// runtime holds the infrastructure shared by every command.
type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	redis    *redis.Client
	catalogs app.CatalogRepository
	sessions app.SessionRepository
	scores   app.ScoreStore
	closers  []func()
}

func loadRuntime(ctx context.Context, path string) (*runtime, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return newRuntime(ctx, cfg, logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format))
}

func newRuntime(ctx context.Context, cfg config.Config, logger *slog.Logger) (*runtime, error) {
	rt := &runtime{cfg: cfg, logger: logger}

	loader, err := newCatalogLoader(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Addr != "" {
		rt.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = rt.redis.Close() })
	}

	catalogTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	if rt.redis != nil {
		rt.catalogs = redisstore.NewCatalogRepository(rt.redis, loader, catalogTTL)
		rt.sessions = redisstore.NewSessionStore(rt.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		rt.catalogs = memory.NewCatalogRepository(loader, catalogTTL)
		rt.sessions = memory.NewSessionStore()
	}

	scores, closeScores, err := openScoreStore(ctx, cfg, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.scores = scores
	rt.closers = append(rt.closers, closeScores)
	return rt, nil
}

func (rt *runtime) gameService() *app.GameService {
	return app.NewGameService(rt.sessions, rt.catalogs, rt.scores, app.GameOptions{
		QuestionCount: rt.cfg.Quiz.QuestionCount,
		FeedbackDelay: config.TTLDuration(rt.cfg.Quiz.FeedbackDelay, 2*time.Second),
		Logger:        rt.logger,
	})
}

// Close releases connections in reverse order of acquisition.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

// newCatalogLoader lists a directory when configured, else a manifest file, else the embedded manifest.
func newCatalogLoader(cfg config.Config, logger *slog.Logger) (*assets.Loader, error) {
	var lister assets.Lister
	switch {
	case cfg.Assets.Dir != "":
		lister = assets.NewDirLister(os.DirFS(cfg.Assets.Dir))
	case cfg.Assets.Manifest != "":
		manifest, err := assets.LoadManifest(cfg.Assets.Manifest)
		if err != nil {
			return nil, err
		}
		lister = manifest
	default:
		lister = assets.DefaultManifest()
	}
	return assets.NewLoader(lister, cfg.Assets.Categories, logger), nil
}

// openScoreStore opens and migrates the configured score store.
func openScoreStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (app.ScoreStore, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		return memory.NewScoreStore(), func() {}, nil
	case "postgres":
		if _, err := postgres.Migrate(ctx, cfg.PostgresURL()); err != nil {
			return nil, nil, err
		}
		pool, err := postgres.Connect(ctx, cfg.PostgresURL())
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewScoreStore(pool), pool.Close, nil
	default:
		db, err := openSQLStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, logger); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlstore.NewScoreStore(db), func() { _ = db.Close() }, nil
	}
}

func openSQLStore(ctx context.Context, cfg config.Config) (*sqlstore.DB, error) {
	dialect, err := sqlstore.DialectFor(cfg.Store.Driver)
	if err != nil {
		return nil, fmt.Errorf("store driver: %w", err)
	}
	return sqlstore.Open(ctx, dialect, sqlstore.DialectConfig{Path: cfg.Store.Path, URL: cfg.Store.URL})
}

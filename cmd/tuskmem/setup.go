package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/tuskmem/internal/config"
	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/internal/providers/llm"
	"github.com/sandevgo/tuskmem/internal/service/memory"
	"github.com/sandevgo/tuskmem/internal/service/recap"
	"github.com/sandevgo/tuskmem/internal/storage/inmem"
	"github.com/sandevgo/tuskmem/internal/storage/redis"
	"github.com/sandevgo/tuskmem/internal/storage/sqlite"
	"github.com/sandevgo/tuskmem/pkg/log"
	"github.com/sandevgo/tuskmem/pkg/retry"
	"github.com/sandevgo/tuskmem/pkg/srv"
)

// App holds the wired components shared by the subcommands.
type App struct {
	Config   *config.AppConfig
	Memory   *memory.Consolidator
	Recap    core.Summarizer
	Cleanups []srv.Service
}

// Close runs the cleanup services in reverse order.
func (a *App) Close(ctx context.Context) error {
	return srv.ShutdownServices(ctx, a.Cleanups)
}

type setupOptions struct {
	// withLLM wires the extractor and the recap summarizer.
	withLLM bool
}

func NewApp(ctx context.Context, opts setupOptions) (*App, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	cfg := config.NewAppConfig(ctx)
	app := &App{Config: cfg}

	store, cleanup, err := initStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.GetStoreBackend(), err)
	}
	app.Cleanups = append(app.Cleanups, srv.NewCleanup(cleanup))

	var extractor core.Extractor
	if opts.withLLM {
		ai, err := llm.NewProvider(ctx, config.NewLLMConfig(ctx))
		if err != nil {
			_ = app.Close(ctx)
			return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
		}

		retrier := retry.NewDefaultRetrier()
		ex := memory.NewExtractor(ai, retrier)
		ex.TokenBudget = cfg.TokenBudget
		extractor = ex

		if cfg.EnableRecap {
			app.Recap = recap.NewService(ai, retrier)
		}
	}

	app.Memory = memory.NewConsolidator(store, extractor, memory.WithCapacity(cfg.GetCapacity()))

	log.FromCtx(ctx).Debug().
		Str("store", cfg.GetStoreBackend()).
		Int("capacity", cfg.GetCapacity()).
		Bool("llm", opts.withLLM).
		Msg("components wired")

	return app, nil
}

func initStore(ctx context.Context, cfg core.AppConfig) (core.Store, func() error, error) {
	switch cfg.GetStoreBackend() {
	case config.StoreMemory:
		return inmem.NewStore(), nil, nil

	case config.StoreSQLite:
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewMemoryRepo(db), db.Close, nil

	case config.StoreRedis:
		rcfg := config.NewRedisConfig(ctx)
		client := redis.NewClient(rcfg)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", rcfg.Addr, err)
		}
		store := redis.NewStore(client, rcfg.Namespace)
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.GetStoreBackend())
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

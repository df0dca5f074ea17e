package app

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/db"
	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/pipeline"
	"github.com/yungbote/viriato-backend/internal/observability"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type App struct {
	Log   *logger.Logger
	DB    *gorm.DB
	Cfg   Config
	Repos repos.Set

	mu      sync.Mutex
	closers []func() error
}

// New opens the logger, tracing and database. Heavier clients are wired by
// the command that needs them.
func New(ctx context.Context, component string) (*App, error) {
	cfg := LoadConfig(nil)
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	cfg = LoadConfig(log)
	a := &App{Log: log, Cfg: cfg}

	shutdown := observability.InitOTel(ctx, log, observability.OtelConfigFromEnv(component))
	a.onClose(func() error { return shutdown(context.Background()) })

	pg, err := db.NewPostgresService(log, cfg.DB)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}
	a.onClose(pg.Close)
	a.DB = pg.DB()
	a.Repos = repos.NewSet(a.DB, log)
	return a, nil
}

func (a *App) Migrate() error {
	a.Log.Info("Running migrations", "driver", a.Cfg.DB.Driver)
	return db.AutoMigrateAll(a.DB)
}

// NewRunner wires the pipeline against the configured raw source and, when
// NEO4J_URI is set, the graph store.
func (a *App) NewRunner(ctx context.Context) (*pipeline.Runner, error) {
	pcfg, err := pipeline.LoadConfigFile(a.Cfg.PipelineConfig)
	if err != nil {
		return nil, err
	}
	src, err := a.wireSource(ctx)
	if err != nil {
		return nil, err
	}
	deps := pipeline.RunnerDeps{DB: a.DB, Log: a.Log, Source: src, Repos: a.Repos, Config: pcfg}
	gw, err := a.wireGraph()
	if err != nil {
		return nil, err
	}
	if gw != nil {
		deps.Graph = gw
	}
	return pipeline.NewRunner(deps)
}

func (a *App) onClose(fn func() error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, fn)
}

// Close releases clients in reverse order of creation.
func (a *App) Close() {
	if a == nil {
		return
	}
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && a.Log != nil {
			a.Log.Warn("Close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

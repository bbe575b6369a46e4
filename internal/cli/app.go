package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/slenderdeveloperman/QuoteBook/internal/config"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
	"github.com/slenderdeveloperman/QuoteBook/internal/observability"
	"github.com/slenderdeveloperman/QuoteBook/internal/prefs"
	"github.com/slenderdeveloperman/QuoteBook/internal/repo"
	"github.com/slenderdeveloperman/QuoteBook/internal/services"
)

// App is the wired object graph one command runs against.
type App struct {
	Cfg      config.Config
	Log      zerolog.Logger
	DB       *gorm.DB
	Store    *repo.QuoteStore
	Repo     *services.QuoteRepository
	Prefs    *prefs.Store
	Registry *prometheus.Registry // nil when metrics are disabled

	shutdown observability.ShutdownFunc
}

// Open builds the App for cfg: tracing, the migrated quote database, the
// repository and the preference file.
func Open(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, error) {
	shutdown, err := observability.SetupOTel(ctx, cfg.OTEL, Version)
	if err != nil {
		return nil, fmt.Errorf("otel: %w", err)
	}

	var opts []repo.Option
	if cfg.OTEL.Enabled {
		opts = append(opts, repo.WithTracing())
	}
	db, err := repo.OpenSQLite(cfg.DBPath, opts...)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	if err := repo.Migrate(db); err != nil {
		_ = repo.Close(db)
		_ = shutdown(ctx)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	p, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		_ = repo.Close(db)
		_ = shutdown(ctx)
		return nil, fmt.Errorf("open %s: %w", cfg.PrefsPath, err)
	}

	store := repo.NewQuoteStore(db)

	var (
		reg     *prometheus.Registry
		metrics *observability.Metrics
	)
	if cfg.MetricsEnabled {
		reg = prometheus.NewRegistry()
		metrics = observability.NewMetrics(reg)
		if err := observability.RegisterStreamGauge(reg, store.Hub().Subscribers); err != nil {
			log.Warn().Err(err).Msg("stream gauge not registered")
		}
	}

	r := services.NewQuoteRepository(store, log, metrics)
	r.Timeout = cfg.DBTimeout

	log.Debug().Str("db", cfg.DBPath).Str("prefs", cfg.PrefsPath).Msg("quotebook opened")

	return &App{
		Cfg:      cfg,
		Log:      log,
		DB:       db,
		Store:    store,
		Repo:     r,
		Prefs:    p,
		Registry: reg,
		shutdown: shutdown,
	}, nil
}

// Close releases files and flushes traces.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(
		a.Prefs.Close(),
		repo.Close(a.DB),
		a.shutdown(ctx),
	)
}

// first returns the current value of s and closes it.
func first[T any](ctx context.Context, s *live.Stream[T]) (T, error) {
	defer s.Close()
	snap, err := s.Next(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return snap.Value, snap.Err
}

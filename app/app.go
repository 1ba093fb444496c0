package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/golfcard/app/modules/round"
	roundcache "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/cache"
	"github.com/Black-And-White-Club/golfcard/config"
	"github.com/Black-And-White-Club/golfcard/pkg/eventbus"
	"github.com/Black-And-White-Club/golfcard/pkg/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const shutdownTimeout = 10 * time.Second

// App wires configuration, observability, storage and the round module.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	MessageRouter *message.Router
	RoundModule   *round.Module

	router chi.Router
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewApp builds the application. The database is only opened when a DSN is
// configured.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability) (*App, error) {
	if cfg == nil || obs == nil {
		return nil, errors.New("config and observability are required")
	}
	logger := obs.Logger

	app := &App{
		Config:        cfg,
		Observability: obs,
		logger:        logger,
	}

	if cfg.Postgres.DSN != "" {
		app.DB = OpenDB(cfg.Postgres.DSN)
		logger.InfoContext(ctx, "Remote round store enabled")
	} else {
		logger.InfoContext(ctx, "No DATABASE_URL configured, running local-only")
	}

	cache, err := roundcache.New(ctx, roundcache.Options{
		Driver:    cfg.Cache.Driver,
		Path:      cfg.Cache.Path,
		RedisAddr: cfg.Cache.RedisAddr,
		RedisDB:   cfg.Cache.RedisDB,
	})
	if err != nil {
		app.closeDB()
		return nil, fmt.Errorf("failed to open round cache: %w", err)
	}

	bus := eventbus.NewInMemory(logger)
	app.EventBus = bus

	msgRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		_ = cache.Close()
		app.closeDB()
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}
	app.MessageRouter = msgRouter

	app.router = chi.NewRouter()
	app.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	app.router.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	roundModule, err := round.NewRoundModule(ctx, cfg, obs, cache, bus, msgRouter, app.router, app.DB)
	if err != nil {
		_ = cache.Close()
		app.closeDB()
		return nil, fmt.Errorf("failed to initialize round module: %w", err)
	}
	app.RoundModule = roundModule

	return app, nil
}

// OpenDB returns a bun handle over Postgres. The connection is established
// lazily on first use.
func OpenDB(dsn string) *bun.DB {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(pgdb, pgdialect.New())
}

// Router returns the HTTP handler serving the API, health and metrics.
func (app *App) Router() http.Handler {
	return app.router
}

// Run serves HTTP, events and the round module until ctx is cancelled, then
// shuts everything down.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := app.MessageRouter.Run(ctx); err != nil {
			app.logger.ErrorContext(ctx, "Message router stopped", "error", err)
		}
	}()

	app.wg.Add(1)
	go app.RoundModule.Run(ctx, &app.wg)

	srv := &http.Server{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.InfoContext(ctx, "Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var metricsSrv *http.Server
	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		metricsSrv = &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(app.Observability.Registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			app.logger.InfoContext(ctx, "Starting metrics server", "addr", addr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				app.logger.ErrorContext(ctx, "Metrics server failed", "error", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
		cancel()
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("HTTP server shutdown failed", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("Metrics server shutdown failed", "error", err)
		}
	}

	app.wg.Wait()
	if err := app.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Close releases module, bus and database resources.
func (app *App) Close() error {
	var errs []error
	if app.RoundModule != nil {
		if err := app.RoundModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.MessageRouter != nil {
		if err := app.MessageRouter.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close message router: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}
	if err := app.closeDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *App) closeDB() error {
	if app.DB == nil {
		return nil
	}
	if err := app.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

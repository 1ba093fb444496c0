package round

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundservice "github.com/Black-And-White-Club/golfcard/app/modules/round/application"
	roundcache "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/cache"
	roundevents "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/events"
	roundhandlers "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/golfcard/config"
	"github.com/Black-And-White-Club/golfcard/pkg/eventbus"
	"github.com/Black-And-White-Club/golfcard/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the round module.
type Module struct {
	config     *config.Config
	service    roundservice.Service
	handlers   roundhandlers.Handlers
	cache      roundcache.Cache
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewRoundModule creates a new instance of the Round module. A nil db runs
// the store local-only; a nil msgRouter skips the lifecycle audit log.
func NewRoundModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	cache roundcache.Cache,
	bus eventbus.EventBus,
	msgRouter *message.Router,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	if obs == nil {
		return nil, fmt.Errorf("observability is required")
	}
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing round module",
		"remote_store", db != nil,
	)

	var repo rounddb.Repository
	if db != nil {
		repo = rounddb.NewRepository(db)
	}

	var publisher roundevents.Publisher = roundevents.NopPublisher{}
	if bus != nil {
		publisher = roundevents.NewWatermillPublisher(bus)
		if msgRouter != nil {
			roundevents.RegisterAuditHandlers(msgRouter, bus, logger)
		}
	}

	service := roundservice.NewRoundService(
		repo,
		cache,
		publisher,
		logger,
		obs.RoundMetrics,
		obs.Tracer,
		db,
		rounddomain.Defaults{
			HandicapPercentage:          cfg.Scoring.DefaultHandicapPercentage,
			SindicatoHandicapPercentage: cfg.Scoring.SindicatoHandicapPercentage,
		},
	)

	handlers := roundhandlers.NewRoundHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		roundhandlers.RegisterRoutes(httpRouter, handlers, roundhandlers.RouteConfig{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			RateLimit:      cfg.HTTP.RateLimit,
			RateBurst:      cfg.HTTP.RateBurst,
			MaxClients:     cfg.HTTP.MaxClients,
			ClientIdle:     cfg.HTTP.ClientIdle,
		})
	}

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		cache:    cache,
		logger:   logger,
	}, nil
}

// Run restores any cached active round and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting round module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if _, err := m.service.RestoreLocal(ctx); err == nil {
		m.logger.InfoContext(ctx, "Restored active round from local cache")
	}
	if _, err := m.service.LoadHistory(ctx, roundservice.HistoryOptions{}); err != nil {
		m.logger.WarnContext(ctx, "Failed to load round history", "error", err)
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Round module goroutine stopped")
}

// Close saves the active round locally and releases the cache.
func (m *Module) Close() error {
	m.logger.Info("Stopping round module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if err := m.service.SaveLocal(context.Background()); err != nil && !errors.Is(err, roundservice.ErrNoActiveRound) {
		m.logger.Warn("Failed to cache active round on shutdown", "error", err)
	}

	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			m.logger.Error("Error closing round cache", "error", err)
			return fmt.Errorf("error closing round cache: %w", err)
		}
	}

	m.logger.Info("Round module stopped")
	return nil
}

// GetService returns the round service for use by other modules.
func (m *Module) GetService() roundservice.Service {
	return m.service
}

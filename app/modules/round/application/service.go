package roundservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundcache "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/cache"
	roundevents "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/events"
	rounddb "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
	roundmetrics "github.com/Black-And-White-Club/golfcard/pkg/observability/metrics/round"
	"github.com/Black-And-White-Club/golfcard/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RoundService implements the Service interface.
type RoundService struct {
	repo     rounddb.Repository
	cache    roundcache.Cache
	events   roundevents.Publisher
	logger   *slog.Logger
	metrics  roundmetrics.RoundMetrics
	tracer   trace.Tracer
	db       *bun.DB
	defaults rounddomain.Defaults
	clock    Clock
	newID    func() string

	mu      sync.Mutex
	active  *rounddomain.Round
	history []*rounddomain.Round
}

// NewRoundService creates a new RoundService. A nil repo runs the store
// local-only; a nil cache keeps local state in memory.
func NewRoundService(
	repo rounddb.Repository,
	cache roundcache.Cache,
	events roundevents.Publisher,
	logger *slog.Logger,
	metrics roundmetrics.RoundMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	defaults rounddomain.Defaults,
	opts ...Option,
) *RoundService {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = roundcache.NewMemoryCache()
	}
	if events == nil {
		events = roundevents.NopPublisher{}
	}
	s := &RoundService{
		repo:     repo,
		cache:    cache,
		events:   events,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		defaults: defaults,
		clock:    realClock{},
		newID:    defaultID,
		history:  []*rounddomain.Round{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Service = (*RoundService)(nil)

// operationFunc is the signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps an operation with tracing, metrics, logging and panic recovery.
func withTelemetry[S any, F any](
	s *RoundService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("round_id", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, operationName+" triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.RoundID("round_id", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.RoundID("round_id", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.RoundID("round_id", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *RoundService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// unwrap converts an operation result into the public (value, error) form.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, nil
	}
	return *result.Success, nil
}

// publish emits a lifecycle event. Failures are logged only.
func (s *RoundService) publish(ctx context.Context, topic string, round *rounddomain.Round, remote bool) {
	if err := s.events.Publish(ctx, topic, round, remote); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish round event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.RoundID("round_id", round.ID),
			attr.Error(err),
		)
	}
}

func (s *RoundService) activeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ""
	}
	return s.active.ID
}

func noActive[S any]() results.OperationResult[S, error] {
	return results.FailureResult[S, error](ErrNoActiveRound)
}

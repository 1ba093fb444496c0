package roundmetrics

import (
	"context"
	"time"
)

// RoundMetrics is implemented by the round service's metric sinks.
type RoundMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)

	// RecordPersistenceFallback counts saves that landed in the local cache
	// because the remote store rejected them.
	RecordPersistenceFallback(ctx context.Context, operation string)
	RecordHoleConfirmed(ctx context.Context, hole int)
}

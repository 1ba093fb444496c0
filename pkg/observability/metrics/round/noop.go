package roundmetrics

import (
	"context"
	"time"
)

// NoOpMetrics discards every observation.
type NoOpMetrics struct{}

var _ RoundMetrics = (*NoOpMetrics)(nil)

func (NoOpMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {}
func (NoOpMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {}
func (NoOpMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {}
func (NoOpMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
}
func (NoOpMetrics) RecordPersistenceFallback(ctx context.Context, operation string) {}
func (NoOpMetrics) RecordHoleConfirmed(ctx context.Context, hole int)              {}

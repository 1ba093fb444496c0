package roundservice

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/Black-And-White-Club/golfcard/pkg/results"
)

// UpdateScore sets strokes or putts for one player on one hole. Values are
// stored without range checks.
func (s *RoundService) UpdateScore(ctx context.Context, playerID string, hole int, field rounddomain.ScoreField, value int) (*rounddomain.Round, error) {
	return unwrap(withTelemetry(s, ctx, "UpdateScore", s.activeID(), func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		return s.mutateActive(func(r *rounddomain.Round) error {
			return r.UpdateScore(playerID, hole, field, value)
		})
	}))
}

// ConfirmHole counts a hole towards totals. Confirming twice is a no-op.
func (s *RoundService) ConfirmHole(ctx context.Context, hole int) (*rounddomain.Round, error) {
	return unwrap(withTelemetry(s, ctx, "ConfirmHole", s.activeID(), func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		return s.mutateActive(func(r *rounddomain.Round) error {
			changed, err := r.ConfirmHole(hole)
			if err == nil && changed && s.metrics != nil {
				s.metrics.RecordHoleConfirmed(ctx, hole)
			}
			return err
		})
	}))
}

// ReopenHole makes a confirmed hole editable again.
func (s *RoundService) ReopenHole(ctx context.Context, hole int) (*rounddomain.Round, error) {
	return unwrap(withTelemetry(s, ctx, "ReopenHole", s.activeID(), func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		return s.mutateActive(func(r *rounddomain.Round) error {
			if _, ok := r.Hole(hole); !ok {
				return rounddomain.ErrHoleNotInRound
			}
			r.ReopenHole(hole)
			return nil
		})
	}))
}

// Scorecard derives the scorecard of the active round.
func (s *RoundService) Scorecard(ctx context.Context) (rounddomain.Scorecard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return rounddomain.Scorecard{}, ErrNoActiveRound
	}
	return rounddomain.BuildScorecard(s.active), nil
}

// mutateActive applies fn to the active round. Domain errors become failures.
func (s *RoundService) mutateActive(fn func(r *rounddomain.Round) error) (results.OperationResult[*rounddomain.Round, error], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return noActive[*rounddomain.Round](), nil
	}
	if err := fn(s.active); err != nil {
		if isDomainError(err) {
			return results.FailureResult[*rounddomain.Round, error](err), nil
		}
		return results.OperationResult[*rounddomain.Round, error]{}, err
	}
	return results.SuccessResult[*rounddomain.Round, error](s.active.Clone()), nil
}

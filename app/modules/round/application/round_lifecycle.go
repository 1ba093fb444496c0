package roundservice

import (
	"context"
	"errors"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/events"
	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
	"github.com/Black-And-White-Club/golfcard/pkg/results"
)

// StartRound creates the active round. It does nothing and reports
// ErrRoundAlreadyActive when a round is already in play.
func (s *RoundService) StartRound(ctx context.Context, course rounddomain.Course, players []rounddomain.PlayerSetup, settings rounddomain.Settings) (*rounddomain.Round, error) {
	return unwrap(withTelemetry(s, ctx, "StartRound", course.ID, func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		return s.startRoundLogic(ctx, course, players, settings)
	}))
}

func (s *RoundService) startRoundLogic(ctx context.Context, course rounddomain.Course, players []rounddomain.PlayerSetup, settings rounddomain.Settings) (results.OperationResult[*rounddomain.Round, error], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return results.FailureResult[*rounddomain.Round, error](ErrRoundAlreadyActive), nil
	}

	if err := settings.Validate(); err != nil {
		return results.FailureResult[*rounddomain.Round, error](err), nil
	}

	round, err := rounddomain.NewRound(s.newID(), s.clock.Now(), course, players, settings.WithDefaults(s.defaults))
	if err != nil {
		return results.FailureResult[*rounddomain.Round, error](err), nil
	}

	for _, p := range round.Players {
		if p.HandicapDefaulted {
			s.logger.WarnContext(ctx, "Playing handicap defaulted to zero",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", round.ID),
				attr.PlayerID(p.ID),
				attr.String("reason", p.HandicapReason),
			)
		}
	}

	s.active = round
	s.publish(ctx, roundevents.RoundStartedTopic, round, false)
	return results.SuccessResult[*rounddomain.Round, error](round.Clone()), nil
}

// ActiveRound returns a copy of the round in play.
func (s *RoundService) ActiveRound(ctx context.Context) (*rounddomain.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, ErrNoActiveRound
	}
	return s.active.Clone(), nil
}

// AbandonRound discards the active round without persisting it.
func (s *RoundService) AbandonRound(ctx context.Context) error {
	_, err := unwrap(withTelemetry(s, ctx, "AbandonRound", s.activeID(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.active == nil {
			return noActive[bool](), nil
		}
		abandoned := s.active
		s.active = nil

		if err := s.cache.ClearActive(ctx); err != nil {
			s.logger.WarnContext(ctx, "Failed to clear cached active round",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", abandoned.ID),
				attr.Error(err),
			)
		}
		s.publish(ctx, roundevents.RoundAbandonedTopic, abandoned, false)
		return results.SuccessResult[bool, error](true), nil
	}))
	return err
}

// ContinueRound makes a history round active again as it is.
func (s *RoundService) ContinueRound(ctx context.Context, ref string) (*rounddomain.Round, error) {
	return unwrap(withTelemetry(s, ctx, "ContinueRound", ref, func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		return s.promoteLogic(ctx, ref, false)
	}))
}

// ReopenFinishedRound makes a history round active again and clears its
// finished flag.
func (s *RoundService) ReopenFinishedRound(ctx context.Context, ref string) (*rounddomain.Round, error) {
	return unwrap(withTelemetry(s, ctx, "ReopenFinishedRound", ref, func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		return s.promoteLogic(ctx, ref, true)
	}))
}

// promoteLogic moves the history round matching ref (external id first, then
// local id) into the active slot, dropping every history entry for it.
func (s *RoundService) promoteLogic(ctx context.Context, ref string, reopen bool) (results.OperationResult[*rounddomain.Round, error], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return results.FailureResult[*rounddomain.Round, error](ErrRoundAlreadyActive), nil
	}

	target := s.findInHistory(ref)
	if target == nil {
		return results.FailureResult[*rounddomain.Round, error](ErrRoundNotInHistory), nil
	}

	round := target.Clone()
	s.history = removeRound(s.history, round)
	if reopen {
		round.Reopen()
	}
	s.active = round

	s.storeHistoryLocally(ctx)
	if reopen {
		s.publish(ctx, roundevents.RoundReopenedTopic, round, false)
	}
	return results.SuccessResult[*rounddomain.Round, error](round.Clone()), nil
}

func (s *RoundService) findInHistory(ref string) *rounddomain.Round {
	if ref == "" {
		return nil
	}
	for _, r := range s.history {
		if r.ExternalID == ref {
			return r
		}
	}
	for _, r := range s.history {
		if r.ID == ref {
			return r
		}
	}
	return nil
}

func removeRound(history []*rounddomain.Round, target *rounddomain.Round) []*rounddomain.Round {
	out := make([]*rounddomain.Round, 0, len(history))
	for _, r := range history {
		if !rounddomain.SameRound(r, target) {
			out = append(out, r)
		}
	}
	return out
}

// storeHistoryLocally writes the history list to the cache; the caller holds s.mu.
func (s *RoundService) storeHistoryLocally(ctx context.Context) {
	if err := s.cache.SaveHistory(ctx, s.history); err != nil {
		s.logger.WarnContext(ctx, "Failed to cache round history",
			attr.ExtractCorrelationID(ctx),
			attr.Int("rounds", len(s.history)),
			attr.Error(err),
		)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, rounddomain.ErrPlayerNotFound) ||
		errors.Is(err, rounddomain.ErrHoleNotInRound) ||
		errors.Is(err, rounddomain.ErrUnknownScoreField) ||
		errors.Is(err, rounddomain.ErrInvalidHoleRange) ||
		errors.Is(err, rounddomain.ErrInvalidGameMode) ||
		errors.Is(err, rounddomain.ErrInvalidHandicap)
}

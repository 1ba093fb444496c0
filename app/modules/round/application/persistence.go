package roundservice

import (
	"context"
	"errors"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundcache "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/cache"
	roundevents "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/events"
	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
	"github.com/Black-And-White-Club/golfcard/pkg/results"
	"github.com/uptrace/bun"
)

// SaveProgress persists the active round as non-final. A remote failure is
// reported as a warning and the round is written to the local cache instead.
func (s *RoundService) SaveProgress(ctx context.Context) (PersistOutcome, error) {
	return unwrap(withTelemetry(s, ctx, "SaveProgress", s.activeID(), func(ctx context.Context) (results.OperationResult[PersistOutcome, error], error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.active == nil {
			return noActive[PersistOutcome](), nil
		}

		s.active.IsFinished = false
		outcome := s.persist(ctx, "SaveProgress", s.active)

		if err := s.cache.SaveActive(ctx, s.active); err != nil {
			s.logger.WarnContext(ctx, "Failed to cache active round",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", s.active.ID),
				attr.Error(err),
			)
		}

		s.publish(ctx, roundevents.RoundSavedTopic, s.active, outcome.Remote)
		outcome.Round = s.active.Clone()
		return results.SuccessResult[PersistOutcome, error](outcome), nil
	}))
}

// FinishRound marks the active round finished, persists it and moves it to
// the front of the history list.
func (s *RoundService) FinishRound(ctx context.Context) (PersistOutcome, error) {
	return unwrap(withTelemetry(s, ctx, "FinishRound", s.activeID(), func(ctx context.Context) (results.OperationResult[PersistOutcome, error], error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.active == nil {
			return noActive[PersistOutcome](), nil
		}

		round := s.active
		round.Finish()
		outcome := s.persist(ctx, "FinishRound", round)

		s.history = append([]*rounddomain.Round{round}, removeRound(s.history, round)...)
		s.active = nil

		if err := s.cache.ClearActive(ctx); err != nil {
			s.logger.WarnContext(ctx, "Failed to clear cached active round",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", round.ID),
				attr.Error(err),
			)
		}
		s.storeHistoryLocally(ctx)

		s.publish(ctx, roundevents.RoundFinishedTopic, round, outcome.Remote)
		outcome.Round = round.Clone()
		return results.SuccessResult[PersistOutcome, error](outcome), nil
	}))
}

// DeleteRound removes a round from history and, when it has an external id,
// from the remote store. Local removal happens even if the remote delete fails.
func (s *RoundService) DeleteRound(ctx context.Context, roundID, externalID string) (PersistOutcome, error) {
	identifier := externalID
	if identifier == "" {
		identifier = roundID
	}
	return unwrap(withTelemetry(s, ctx, "DeleteRound", identifier, func(ctx context.Context) (results.OperationResult[PersistOutcome, error], error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		var removed *rounddomain.Round
		kept := make([]*rounddomain.Round, 0, len(s.history))
		for _, r := range s.history {
			if matchesRef(r, roundID, externalID) {
				if removed == nil {
					removed = r
				}
				continue
			}
			kept = append(kept, r)
		}

		if removed == nil && externalID == "" {
			return results.FailureResult[PersistOutcome, error](ErrRoundNotInHistory), nil
		}
		if removed != nil && externalID == "" {
			externalID = removed.ExternalID
		}

		s.history = kept
		s.storeHistoryLocally(ctx)

		outcome := PersistOutcome{Round: removed}
		if externalID != "" {
			if err := s.deleteRemote(ctx, externalID); err != nil {
				outcome.Warning = s.fallback(ctx, "DeleteRound", identifier, err)
			} else {
				outcome.Remote = true
			}
		}

		if removed == nil {
			removed = &rounddomain.Round{ID: roundID, ExternalID: externalID}
		} else {
			outcome.Round = removed.Clone()
		}
		s.publish(ctx, roundevents.RoundDeletedTopic, removed, outcome.Remote)
		return results.SuccessResult[PersistOutcome, error](outcome), nil
	}))
}

func matchesRef(r *rounddomain.Round, roundID, externalID string) bool {
	if externalID != "" && r.ExternalID == externalID {
		return true
	}
	return roundID != "" && r.ID == roundID
}

// SaveLocal writes the active round to the local cache.
func (s *RoundService) SaveLocal(ctx context.Context) error {
	_, err := unwrap(withTelemetry(s, ctx, "SaveLocal", s.activeID(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.active == nil {
			return noActive[bool](), nil
		}
		if err := s.cache.SaveActive(ctx, s.active); err != nil {
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to cache active round: %w", err)
		}
		return results.SuccessResult[bool, error](true), nil
	}))
	return err
}

// RestoreLocal loads the active round from the local cache.
func (s *RoundService) RestoreLocal(ctx context.Context) (*rounddomain.Round, error) {
	return unwrap(withTelemetry(s, ctx, "RestoreLocal", "", func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.active != nil {
			return results.FailureResult[*rounddomain.Round, error](ErrRoundAlreadyActive), nil
		}

		round, err := s.cache.LoadActive(ctx)
		if errors.Is(err, roundcache.ErrCacheMiss) {
			return noActive[*rounddomain.Round](), nil
		}
		if err != nil {
			return results.OperationResult[*rounddomain.Round, error]{}, fmt.Errorf("failed to load cached active round: %w", err)
		}

		s.active = round
		return results.SuccessResult[*rounddomain.Round, error](round.Clone()), nil
	}))
}

// persist writes round to the remote store, recording the new external id on
// create. The caller holds s.mu.
func (s *RoundService) persist(ctx context.Context, operation string, round *rounddomain.Round) PersistOutcome {
	round.PendingSync = false
	externalID, err := s.persistRemote(ctx, round)
	if err != nil {
		round.PendingSync = true
		return PersistOutcome{Warning: s.fallback(ctx, operation, round.ID, err)}
	}
	round.ExternalID = externalID
	return PersistOutcome{Remote: true}
}

func (s *RoundService) persistRemote(ctx context.Context, round *rounddomain.Round) (string, error) {
	if s.repo == nil {
		return "", errors.New("no remote store configured")
	}
	result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[string, error], error) {
		if round.ExternalID != "" {
			if err := s.repo.UpsertRound(ctx, db, round.ExternalID, round); err != nil {
				return results.OperationResult[string, error]{}, err
			}
			return results.SuccessResult[string, error](round.ExternalID), nil
		}
		id, err := s.repo.CreateRound(ctx, db, round)
		if err != nil {
			return results.OperationResult[string, error]{}, err
		}
		return results.SuccessResult[string, error](id), nil
	})
	if err != nil {
		return "", err
	}
	return *result.Success, nil
}

func (s *RoundService) deleteRemote(ctx context.Context, externalID string) error {
	if s.repo == nil {
		return errors.New("no remote store configured")
	}
	_, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		if err := s.repo.DeleteRound(ctx, db, externalID); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	})
	return err
}

// fallback logs and counts a remote failure and returns the warning handed
// back to the caller.
func (s *RoundService) fallback(ctx context.Context, operation, roundID string, err error) error {
	s.logger.WarnContext(ctx, "Remote persistence failed, keeping round locally",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operation),
		attr.RoundID("round_id", roundID),
		attr.Error(err),
	)
	if s.metrics != nil {
		s.metrics.RecordPersistenceFallback(ctx, operation)
	}
	return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
}

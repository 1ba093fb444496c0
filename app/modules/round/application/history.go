package roundservice

import (
	"context"
	"errors"
	"slices"
	"sort"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundcache "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/cache"
	rounddb "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
	"github.com/Black-And-White-Club/golfcard/pkg/results"
)

// History returns copies of the in-memory history list, newest first.
func (s *RoundService) History(ctx context.Context) []*rounddomain.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.history)
}

// LoadHistory reads the remote list first. When the remote errors or is empty
// the local cache is served. A non-empty remote list refreshes the cache.
// Rounds that never reached the remote store, or whose latest save did not,
// are kept in their local form and retried. The active round is never listed.
func (s *RoundService) LoadHistory(ctx context.Context, opts HistoryOptions) (HistoryResult, error) {
	return unwrap(withTelemetry(s, ctx, "LoadHistory", "", func(ctx context.Context) (results.OperationResult[HistoryResult, error], error) {
		return s.loadHistoryLogic(ctx, opts)
	}))
}

func (s *RoundService) loadHistoryLogic(ctx context.Context, opts HistoryOptions) (results.OperationResult[HistoryResult, error], error) {
	var warning error

	remote, err := s.listRemote(ctx, opts)
	if err != nil {
		warning = s.fallback(ctx, "LoadHistory", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cached, cacheErr := s.cache.LoadHistory(ctx)
	if cacheErr != nil && !errors.Is(cacheErr, roundcache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "Failed to read cached round history",
			attr.ExtractCorrelationID(ctx),
			attr.Error(cacheErr),
		)
	}

	if len(remote) == 0 {
		rounds := withoutRound(filterHistory(cached, opts), s.active)
		source := HistorySourceCache
		if cacheErr != nil {
			rounds = withoutRound(filterHistory(s.history, opts), s.active)
			source = HistorySourceMemory
		}
		if isZero(opts) && cacheErr == nil {
			s.history = rounds
		}
		return results.SuccessResult[HistoryResult, error](HistoryResult{
			Rounds:  cloneAll(rounds),
			Source:  source,
			Warning: warning,
		}), nil
	}

	merged := mergeLocal(remote, cached, opts)
	if isZero(opts) {
		warning = s.resyncPending(ctx, merged)
		s.history = withoutRound(merged, s.active)
		s.storeHistoryLocally(ctx)
	}
	return results.SuccessResult[HistoryResult, error](HistoryResult{
		Rounds:  cloneAll(withoutRound(merged, s.active)),
		Source:  HistorySourceRemote,
		Warning: warning,
	}), nil
}

// resyncPending retries the remote write for rounds whose last one failed and
// returns the warning of the last retry that failed. A round that still cannot
// be written stays pending. The caller holds s.mu.
func (s *RoundService) resyncPending(ctx context.Context, rounds []*rounddomain.Round) error {
	var warning error
	for _, r := range rounds {
		if !r.PendingSync {
			continue
		}
		outcome := s.persist(ctx, "LoadHistory", r)
		if !outcome.Remote {
			warning = outcome.Warning
			continue
		}
		s.logger.InfoContext(ctx, "Synced locally saved round",
			attr.ExtractCorrelationID(ctx),
			attr.RoundID("round_id", r.ID),
			attr.RoundID("external_id", r.ExternalID),
		)
	}
	return warning
}

func (s *RoundService) listRemote(ctx context.Context, opts HistoryOptions) ([]*rounddomain.Round, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListRounds(ctx, nil, rounddb.ListOptions{Since: opts.Since, Limit: opts.Limit})
}

// mergeLocal combines the remote list with the cache. Cached rounds that never
// reached the remote store are added, and a pending cached copy replaces the
// remote one it shadows. The result is ordered by play date, newest first.
func mergeLocal(remote, cached []*rounddomain.Round, opts HistoryOptions) []*rounddomain.Round {
	out := make([]*rounddomain.Round, 0, len(remote)+len(cached))
	out = append(out, remote...)
	for _, r := range filterHistory(cached, HistoryOptions{Since: opts.Since}) {
		switch {
		case r.ExternalID == "":
			out = append(out, r)
		case r.PendingSync:
			i := slices.IndexFunc(out, func(o *rounddomain.Round) bool { return rounddomain.SameRound(o, r) })
			if i >= 0 {
				out[i] = r
			} else {
				out = append(out, r)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// withoutRound drops entries that are the same record as active.
func withoutRound(rounds []*rounddomain.Round, active *rounddomain.Round) []*rounddomain.Round {
	if active == nil {
		return rounds
	}
	out := make([]*rounddomain.Round, 0, len(rounds))
	for _, r := range rounds {
		if !rounddomain.SameRound(r, active) {
			out = append(out, r)
		}
	}
	return out
}

func filterHistory(rounds []*rounddomain.Round, opts HistoryOptions) []*rounddomain.Round {
	out := make([]*rounddomain.Round, 0, len(rounds))
	for _, r := range rounds {
		if !opts.Since.IsZero() && r.Date.Before(opts.Since) {
			continue
		}
		out = append(out, r)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}

func isZero(opts HistoryOptions) bool {
	return opts.Since.IsZero() && opts.Limit == 0
}

func cloneAll(rounds []*rounddomain.Round) []*rounddomain.Round {
	out := make([]*rounddomain.Round, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, r.Clone())
	}
	return out
}

package roundservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/events"
	"github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories/mocks"
	roundmetrics "github.com/Black-And-White-Club/golfcard/pkg/observability/metrics/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/mock/gomock"
)

var errRemoteDown = errors.New("connection refused")

func TestSaveProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupRepo  func(f *FakeRoundRepo)
		saves      int
		wantTrace  []string
		wantRemote bool
		wantExtID  string
	}{
		{
			name:       "first save creates the document",
			saves:      1,
			wantTrace:  []string{"CreateRound"},
			wantRemote: true,
			wantExtID:  "ext-1",
		},
		{
			name:       "later saves upsert by external id",
			saves:      2,
			wantTrace:  []string{"CreateRound", "UpsertRound"},
			wantRemote: true,
			wantExtID:  "ext-1",
		},
		{
			name: "remote failure degrades to local",
			setupRepo: func(f *FakeRoundRepo) {
				f.CreateRoundFunc = func(context.Context, *rounddomain.Round) (string, error) {
					return "", errRemoteDown
				}
			},
			saves:     1,
			wantTrace: []string{"CreateRound"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(t, true)
			if tt.setupRepo != nil {
				tt.setupRepo(deps.repo)
			}
			startTestRound(t, svc, rounddomain.Settings{})

			var outcome PersistOutcome
			var err error
			for i := 0; i < tt.saves; i++ {
				outcome, err = svc.SaveProgress(ctx)
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantTrace, deps.repo.Trace())
			assert.Equal(t, tt.wantRemote, outcome.Remote)
			assert.Equal(t, tt.wantExtID, outcome.Round.ExternalID)
			assert.False(t, outcome.Round.IsFinished)
			if tt.wantRemote {
				assert.NoError(t, outcome.Warning)
			} else {
				assert.ErrorIs(t, outcome.Warning, ErrRemoteUnavailable)
			}

			cached, err := deps.cache.LoadActive(ctx)
			require.NoError(t, err)
			assert.Equal(t, outcome.Round.ID, cached.ID)

			active, err := svc.ActiveRound(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExtID, active.ExternalID)
		})
	}
}

func TestSaveProgressWithoutActiveRound(t *testing.T) {
	svc, deps := newTestService(t, true)
	_, err := svc.SaveProgress(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveRound)
	assert.Empty(t, deps.repo.Trace())
}

func TestFinishRound(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		failRemote bool
	}{
		{name: "persisted remotely"},
		{name: "remote failure keeps history locally", failRemote: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(t, true)
			if tt.failRemote {
				deps.repo.CreateRoundFunc = func(context.Context, *rounddomain.Round) (string, error) {
					return "", errRemoteDown
				}
			}
			svc.history = []*rounddomain.Round{historyRound("older", "ext-old", testNow.AddDate(0, 0, -7), true)}
			startTestRound(t, svc, rounddomain.Settings{})

			outcome, err := svc.FinishRound(ctx)
			require.NoError(t, err)
			assert.True(t, outcome.Round.IsFinished)
			assert.Equal(t, !tt.failRemote, outcome.Remote)
			if tt.failRemote {
				assert.ErrorIs(t, outcome.Warning, ErrRemoteUnavailable)
			}

			_, err = svc.ActiveRound(ctx)
			assert.ErrorIs(t, err, ErrNoActiveRound)

			history := svc.History(ctx)
			require.Len(t, history, 2)
			assert.Equal(t, "round-1", history[0].ID)
			assert.True(t, history[0].IsFinished)
			assert.Equal(t, "older", history[1].ID)

			cached, err := deps.cache.LoadHistory(ctx)
			require.NoError(t, err)
			assert.Len(t, cached, 2)
			assert.Contains(t, deps.cache.Trace(), "ClearActive")
			assert.Equal(t, []string{roundevents.RoundStartedTopic, roundevents.RoundFinishedTopic}, deps.events.Topics())
		})
	}
}

func TestDeleteRound(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		roundID     string
		externalID  string
		setupRepo   func(f *FakeRoundRepo)
		wantErr     error
		wantRemote  bool
		wantWarning bool
		wantHistory []string
		wantTrace   []string
	}{
		{
			name:        "local only round",
			roundID:     "local-2",
			wantHistory: []string{"local-1"},
			wantTrace:   []string{},
		},
		{
			name:        "remote copy deleted",
			roundID:     "local-1",
			externalID:  "ext-1",
			wantRemote:  true,
			wantHistory: []string{"local-2"},
			wantTrace:   []string{"DeleteRound"},
		},
		{
			name:        "external id looked up from history",
			roundID:     "local-1",
			wantRemote:  true,
			wantHistory: []string{"local-2"},
			wantTrace:   []string{"DeleteRound"},
		},
		{
			name:       "remote failure still removes locally",
			roundID:    "local-1",
			externalID: "ext-1",
			setupRepo: func(f *FakeRoundRepo) {
				f.DeleteRoundFunc = func(context.Context, string) error { return errRemoteDown }
			},
			wantWarning: true,
			wantHistory: []string{"local-2"},
			wantTrace:   []string{"DeleteRound"},
		},
		{
			name:        "unknown round",
			roundID:     "missing",
			wantErr:     ErrRoundNotInHistory,
			wantHistory: []string{"local-1", "local-2"},
			wantTrace:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(t, true)
			if tt.setupRepo != nil {
				tt.setupRepo(deps.repo)
			}
			deps.repo.docs["ext-1"] = historyRound("local-1", "ext-1", testNow, true)
			svc.history = []*rounddomain.Round{
				historyRound("local-1", "ext-1", testNow, true),
				historyRound("local-2", "", testNow, true),
			}

			outcome, err := svc.DeleteRound(ctx, tt.roundID, tt.externalID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantRemote, outcome.Remote)
				if tt.wantWarning {
					assert.ErrorIs(t, outcome.Warning, ErrRemoteUnavailable)
				} else {
					assert.NoError(t, outcome.Warning)
				}
			}

			var ids []string
			for _, r := range svc.History(ctx) {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantHistory, ids)
			assert.Equal(t, tt.wantTrace, deps.repo.Trace())
		})
	}
}

func TestSaveAndRestoreLocal(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestService(t, false)
	startTestRound(t, svc, rounddomain.Settings{UseHandicap: true})
	_, err := svc.UpdateScore(ctx, "p2", 7, rounddomain.FieldStrokes, 6)
	require.NoError(t, err)
	require.NoError(t, svc.SaveLocal(ctx))

	restored := NewRoundService(nil, deps.cache, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), &roundmetrics.NoOpMetrics{}, noop.NewTracerProvider().Tracer("test"), nil, rounddomain.Defaults{})
	round, err := restored.RestoreLocal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "round-1", round.ID)
	p, ok := round.Player("p2")
	require.True(t, ok)
	assert.Equal(t, 6, p.Scores[7].Strokes)

	_, err = restored.RestoreLocal(ctx)
	assert.ErrorIs(t, err, ErrRoundAlreadyActive)

	empty, _ := newTestService(t, false)
	_, err = empty.RestoreLocal(ctx)
	assert.ErrorIs(t, err, ErrNoActiveRound)
	assert.ErrorIs(t, empty.SaveLocal(ctx), ErrNoActiveRound)
}

func TestSaveLocalCacheError(t *testing.T) {
	svc, deps := newTestService(t, false)
	startTestRound(t, svc, rounddomain.Settings{})
	deps.cache.SaveActiveErr = errors.New("disk full")

	err := svc.SaveLocal(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SaveLocal: failed to cache active round")
}

func TestSaveProgressWithMockRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	repo := mocks.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().CreateRound(gomock.Any(), gomock.Any(), gomock.Any()).Return("ext-9", nil),
		repo.EXPECT().UpsertRound(gomock.Any(), gomock.Any(), "ext-9", gomock.Any()).Return(errRemoteDown),
	)

	svc := NewRoundService(repo, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), &roundmetrics.NoOpMetrics{}, noop.NewTracerProvider().Tracer("test"), nil, rounddomain.Defaults{},
		WithClock(fixedClock{t: testNow}), WithIDGenerator(idSequence()))
	startTestRound(t, svc, rounddomain.Settings{})

	first, err := svc.SaveProgress(ctx)
	require.NoError(t, err)
	assert.True(t, first.Remote)
	assert.Equal(t, "ext-9", first.Round.ExternalID)

	second, err := svc.SaveProgress(ctx)
	require.NoError(t, err)
	assert.False(t, second.Remote)
	assert.ErrorIs(t, second.Warning, ErrRemoteUnavailable)
	assert.Equal(t, "ext-9", second.Round.ExternalID)
}

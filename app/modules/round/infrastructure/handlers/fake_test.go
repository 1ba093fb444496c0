package roundhandlers

import (
	"context"

	roundservice "github.com/Black-And-White-Club/golfcard/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
)

// FakeService is a programmable roundservice.Service.
type FakeService struct {
	trace []string

	StartRoundFunc          func(ctx context.Context, course rounddomain.Course, players []rounddomain.PlayerSetup, settings rounddomain.Settings) (*rounddomain.Round, error)
	ActiveRoundFunc         func(ctx context.Context) (*rounddomain.Round, error)
	AbandonRoundFunc        func(ctx context.Context) error
	UpdateScoreFunc         func(ctx context.Context, playerID string, hole int, field rounddomain.ScoreField, value int) (*rounddomain.Round, error)
	ConfirmHoleFunc         func(ctx context.Context, hole int) (*rounddomain.Round, error)
	ReopenHoleFunc          func(ctx context.Context, hole int) (*rounddomain.Round, error)
	ScorecardFunc           func(ctx context.Context) (rounddomain.Scorecard, error)
	SaveProgressFunc        func(ctx context.Context) (roundservice.PersistOutcome, error)
	FinishRoundFunc         func(ctx context.Context) (roundservice.PersistOutcome, error)
	LoadHistoryFunc         func(ctx context.Context, opts roundservice.HistoryOptions) (roundservice.HistoryResult, error)
	ContinueRoundFunc       func(ctx context.Context, ref string) (*rounddomain.Round, error)
	ReopenFinishedRoundFunc func(ctx context.Context, ref string) (*rounddomain.Round, error)
	DeleteRoundFunc         func(ctx context.Context, roundID, externalID string) (roundservice.PersistOutcome, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) StartRound(ctx context.Context, course rounddomain.Course, players []rounddomain.PlayerSetup, settings rounddomain.Settings) (*rounddomain.Round, error) {
	f.record("StartRound")
	if f.StartRoundFunc != nil {
		return f.StartRoundFunc(ctx, course, players, settings)
	}
	return &rounddomain.Round{}, nil
}

func (f *FakeService) ActiveRound(ctx context.Context) (*rounddomain.Round, error) {
	f.record("ActiveRound")
	if f.ActiveRoundFunc != nil {
		return f.ActiveRoundFunc(ctx)
	}
	return nil, roundservice.ErrNoActiveRound
}

func (f *FakeService) AbandonRound(ctx context.Context) error {
	f.record("AbandonRound")
	if f.AbandonRoundFunc != nil {
		return f.AbandonRoundFunc(ctx)
	}
	return nil
}

func (f *FakeService) UpdateScore(ctx context.Context, playerID string, hole int, field rounddomain.ScoreField, value int) (*rounddomain.Round, error) {
	f.record("UpdateScore")
	if f.UpdateScoreFunc != nil {
		return f.UpdateScoreFunc(ctx, playerID, hole, field, value)
	}
	return &rounddomain.Round{}, nil
}

func (f *FakeService) ConfirmHole(ctx context.Context, hole int) (*rounddomain.Round, error) {
	f.record("ConfirmHole")
	if f.ConfirmHoleFunc != nil {
		return f.ConfirmHoleFunc(ctx, hole)
	}
	return &rounddomain.Round{}, nil
}

func (f *FakeService) ReopenHole(ctx context.Context, hole int) (*rounddomain.Round, error) {
	f.record("ReopenHole")
	if f.ReopenHoleFunc != nil {
		return f.ReopenHoleFunc(ctx, hole)
	}
	return &rounddomain.Round{}, nil
}

func (f *FakeService) Scorecard(ctx context.Context) (rounddomain.Scorecard, error) {
	f.record("Scorecard")
	if f.ScorecardFunc != nil {
		return f.ScorecardFunc(ctx)
	}
	return rounddomain.Scorecard{}, nil
}

func (f *FakeService) SaveProgress(ctx context.Context) (roundservice.PersistOutcome, error) {
	f.record("SaveProgress")
	if f.SaveProgressFunc != nil {
		return f.SaveProgressFunc(ctx)
	}
	return roundservice.PersistOutcome{}, nil
}

func (f *FakeService) FinishRound(ctx context.Context) (roundservice.PersistOutcome, error) {
	f.record("FinishRound")
	if f.FinishRoundFunc != nil {
		return f.FinishRoundFunc(ctx)
	}
	return roundservice.PersistOutcome{}, nil
}

func (f *FakeService) SaveLocal(ctx context.Context) error {
	f.record("SaveLocal")
	return nil
}

func (f *FakeService) RestoreLocal(ctx context.Context) (*rounddomain.Round, error) {
	f.record("RestoreLocal")
	return nil, roundservice.ErrNoActiveRound
}

func (f *FakeService) History(ctx context.Context) []*rounddomain.Round {
	f.record("History")
	return nil
}

func (f *FakeService) LoadHistory(ctx context.Context, opts roundservice.HistoryOptions) (roundservice.HistoryResult, error) {
	f.record("LoadHistory")
	if f.LoadHistoryFunc != nil {
		return f.LoadHistoryFunc(ctx, opts)
	}
	return roundservice.HistoryResult{}, nil
}

func (f *FakeService) ContinueRound(ctx context.Context, ref string) (*rounddomain.Round, error) {
	f.record("ContinueRound")
	if f.ContinueRoundFunc != nil {
		return f.ContinueRoundFunc(ctx, ref)
	}
	return &rounddomain.Round{}, nil
}

func (f *FakeService) ReopenFinishedRound(ctx context.Context, ref string) (*rounddomain.Round, error) {
	f.record("ReopenFinishedRound")
	if f.ReopenFinishedRoundFunc != nil {
		return f.ReopenFinishedRoundFunc(ctx, ref)
	}
	return &rounddomain.Round{}, nil
}

func (f *FakeService) DeleteRound(ctx context.Context, roundID, externalID string) (roundservice.PersistOutcome, error) {
	f.record("DeleteRound")
	if f.DeleteRoundFunc != nil {
		return f.DeleteRoundFunc(ctx, roundID, externalID)
	}
	return roundservice.PersistOutcome{}, nil
}

var _ roundservice.Service = (*FakeService)(nil)

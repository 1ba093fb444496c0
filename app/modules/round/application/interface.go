package roundservice

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
)

// Service is the round store: it owns the active round and the history list
// and persists them through an explicit save/load boundary.
type Service interface {
	StartRound(ctx context.Context, course rounddomain.Course, players []rounddomain.PlayerSetup, settings rounddomain.Settings) (*rounddomain.Round, error)
	ActiveRound(ctx context.Context) (*rounddomain.Round, error)
	AbandonRound(ctx context.Context) error

	UpdateScore(ctx context.Context, playerID string, hole int, field rounddomain.ScoreField, value int) (*rounddomain.Round, error)
	ConfirmHole(ctx context.Context, hole int) (*rounddomain.Round, error)
	ReopenHole(ctx context.Context, hole int) (*rounddomain.Round, error)
	Scorecard(ctx context.Context) (rounddomain.Scorecard, error)

	SaveProgress(ctx context.Context) (PersistOutcome, error)
	FinishRound(ctx context.Context) (PersistOutcome, error)
	SaveLocal(ctx context.Context) error
	RestoreLocal(ctx context.Context) (*rounddomain.Round, error)

	History(ctx context.Context) []*rounddomain.Round
	LoadHistory(ctx context.Context, opts HistoryOptions) (HistoryResult, error)
	ContinueRound(ctx context.Context, ref string) (*rounddomain.Round, error)
	ReopenFinishedRound(ctx context.Context, ref string) (*rounddomain.Round, error)
	DeleteRound(ctx context.Context, roundID, externalID string) (PersistOutcome, error)
}

package rounddb

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/uptrace/bun"
)

// Repository is the remote document store for rounds, keyed by external id.
type Repository interface {
	// CreateRound stores a new document and returns its external id.
	CreateRound(ctx context.Context, db bun.IDB, round *rounddomain.Round) (string, error)

	// UpsertRound replaces the document stored under externalID, creating it if needed.
	UpsertRound(ctx context.Context, db bun.IDB, externalID string, round *rounddomain.Round) error

	GetRound(ctx context.Context, db bun.IDB, externalID string) (*rounddomain.Round, error)

	// ListRounds returns stored rounds, most recently played first.
	ListRounds(ctx context.Context, db bun.IDB, opts ListOptions) ([]*rounddomain.Round, error)

	DeleteRound(ctx context.Context, db bun.IDB, externalID string) error
}

package roundcache

import (
	"context"
	"errors"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
)

// ErrCacheMiss is returned when a key has never been written or was cleared.
var ErrCacheMiss = errors.New("cache miss")

// Keys under which the cache stores its two documents.
const (
	KeyActiveRound  = "active_round"
	KeyRoundHistory = "round_history"
)

// Cache is the local store of record for the active round and the history
// list. It is used whenever the remote store is unavailable.
type Cache interface {
	SaveActive(ctx context.Context, round *rounddomain.Round) error
	LoadActive(ctx context.Context) (*rounddomain.Round, error)
	ClearActive(ctx context.Context) error

	SaveHistory(ctx context.Context, rounds []*rounddomain.Round) error
	LoadHistory(ctx context.Context) ([]*rounddomain.Round, error)

	Close() error
}

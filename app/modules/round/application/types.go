package roundservice

import (
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
)

// PersistOutcome reports where a save, finish or delete landed. Warning is set
// when the remote store failed and the change is kept locally only.
type PersistOutcome struct {
	Round   *rounddomain.Round
	Remote  bool
	Warning error
}

// HistoryOptions narrows LoadHistory.
type HistoryOptions struct {
	Since time.Time
	Limit int
}

// HistoryResult is the outcome of LoadHistory.
type HistoryResult struct {
	Rounds []*rounddomain.Round
	Source string
	// Warning is set when the remote list failed and the cache was used.
	Warning error
}

package rounddomain

import "errors"

var (
	ErrPlayerNotFound    = errors.New("player not found in round")
	ErrHoleNotInRound    = errors.New("hole is not part of this round")
	ErrUnknownScoreField = errors.New("unknown score field")
	ErrInvalidHoleRange  = errors.New("course length selects no holes")
	ErrInvalidGameMode   = errors.New("invalid game mode")
	ErrInvalidHandicap   = errors.New("invalid handicap percentage")
)

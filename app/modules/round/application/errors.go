package roundservice

import "errors"

var (
	ErrRoundAlreadyActive = errors.New("a round is already active")
	ErrNoActiveRound      = errors.New("no active round")
	ErrRoundNotInHistory  = errors.New("round not found in history")
	// ErrRemoteUnavailable wraps remote store failures reported as warnings.
	ErrRemoteUnavailable = errors.New("remote store unavailable, kept locally")
)

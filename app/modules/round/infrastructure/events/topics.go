package roundevents

// Round lifecycle topics.
const (
	RoundStartedTopic   = "golfcard.round.started.v1"
	RoundSavedTopic     = "golfcard.round.saved.v1"
	RoundFinishedTopic  = "golfcard.round.finished.v1"
	RoundReopenedTopic  = "golfcard.round.reopened.v1"
	RoundAbandonedTopic = "golfcard.round.abandoned.v1"
	RoundDeletedTopic   = "golfcard.round.deleted.v1"
)

// Topics lists every lifecycle topic.
var Topics = []string{
	RoundStartedTopic,
	RoundSavedTopic,
	RoundFinishedTopic,
	RoundReopenedTopic,
	RoundAbandonedTopic,
	RoundDeletedTopic,
}

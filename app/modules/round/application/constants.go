package roundservice

const serviceName = "RoundService"

// Where LoadHistory found its rounds.
const (
	HistorySourceRemote = "remote"
	HistorySourceCache  = "cache"
	HistorySourceMemory = "memory"
)

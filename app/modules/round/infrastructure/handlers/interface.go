package roundhandlers

import "net/http"

type Handlers interface {
	// Tracing wraps every API request in a span.
	Tracing(next http.Handler) http.Handler

	// Active round
	HandleStartRound(w http.ResponseWriter, r *http.Request)
	HandleGetActiveRound(w http.ResponseWriter, r *http.Request)
	HandleAbandonRound(w http.ResponseWriter, r *http.Request)
	HandleUpdateScore(w http.ResponseWriter, r *http.Request)
	HandleConfirmHole(w http.ResponseWriter, r *http.Request)
	HandleReopenHole(w http.ResponseWriter, r *http.Request)
	HandleSaveProgress(w http.ResponseWriter, r *http.Request)
	HandleFinishRound(w http.ResponseWriter, r *http.Request)
	HandleScorecard(w http.ResponseWriter, r *http.Request)

	// History
	HandleListHistory(w http.ResponseWriter, r *http.Request)
	HandleContinueRound(w http.ResponseWriter, r *http.Request)
	HandleReopenRound(w http.ResponseWriter, r *http.Request)
	HandleDeleteRound(w http.ResponseWriter, r *http.Request)

	// Scoring functions
	HandleHandicap(w http.ResponseWriter, r *http.Request)
	HandleStableford(w http.ResponseWriter, r *http.Request)
	HandleSindicato(w http.ResponseWriter, r *http.Request)
	HandleTeam(w http.ResponseWriter, r *http.Request)
}

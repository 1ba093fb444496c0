package roundhandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	roundservice "github.com/Black-And-White-Club/golfcard/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
)

type errorResponse struct {
	Error string `json:"error"`
}

// persistResponse is returned by save, finish and delete. Warning is set when
// the change only reached the local store.
type persistResponse struct {
	Round   *rounddomain.Round `json:"round,omitempty"`
	Remote  bool               `json:"remote"`
	Warning string             `json:"warning,omitempty"`
}

func newPersistResponse(o roundservice.PersistOutcome) persistResponse {
	resp := persistResponse{Round: o.Round, Remote: o.Remote}
	if o.Warning != nil {
		resp.Warning = o.Warning.Error()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusFor maps service and domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, roundservice.ErrNoActiveRound),
		errors.Is(err, roundservice.ErrRoundNotInHistory):
		return http.StatusNotFound
	case errors.Is(err, roundservice.ErrRoundAlreadyActive):
		return http.StatusConflict
	case errors.Is(err, rounddomain.ErrPlayerNotFound),
		errors.Is(err, rounddomain.ErrHoleNotInRound),
		errors.Is(err, rounddomain.ErrUnknownScoreField),
		errors.Is(err, rounddomain.ErrInvalidHoleRange),
		errors.Is(err, rounddomain.ErrInvalidGameMode),
		errors.Is(err, rounddomain.ErrInvalidHandicap):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *RoundHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Round request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

package roundhandlers

import (
	"net/http"
	"strconv"
	"time"

	roundservice "github.com/Black-And-White-Club/golfcard/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/go-chi/chi/v5"
)

// StartRoundRequest is the body of POST /api/rounds.
type StartRoundRequest struct {
	Course   rounddomain.Course        `json:"course"`
	Players  []rounddomain.PlayerSetup `json:"players"`
	Settings rounddomain.Settings      `json:"settings"`
}

// UpdateScoreRequest is the body of PUT .../players/{playerID}/holes/{hole}.
type UpdateScoreRequest struct {
	Field rounddomain.ScoreField `json:"field"`
	Value int                    `json:"value"`
}

type historyResponse struct {
	Rounds  []*rounddomain.Round `json:"rounds"`
	Source  string               `json:"source"`
	Warning string               `json:"warning,omitempty"`
}

func (h *RoundHandlers) HandleStartRound(w http.ResponseWriter, r *http.Request) {
	var req StartRoundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Course.Holes) == 0 {
		writeError(w, http.StatusBadRequest, "course has no holes")
		return
	}

	round, err := h.service.StartRound(r.Context(), req.Course, req.Players, req.Settings)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, round)
}

func (h *RoundHandlers) HandleGetActiveRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.service.ActiveRound(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

func (h *RoundHandlers) HandleAbandonRound(w http.ResponseWriter, r *http.Request) {
	if err := h.service.AbandonRound(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RoundHandlers) HandleUpdateScore(w http.ResponseWriter, r *http.Request) {
	hole, ok := holeParam(w, r)
	if !ok {
		return
	}
	var req UpdateScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	round, err := h.service.UpdateScore(r.Context(), chi.URLParam(r, "playerID"), hole, req.Field, req.Value)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

func (h *RoundHandlers) HandleConfirmHole(w http.ResponseWriter, r *http.Request) {
	hole, ok := holeParam(w, r)
	if !ok {
		return
	}
	round, err := h.service.ConfirmHole(r.Context(), hole)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

func (h *RoundHandlers) HandleReopenHole(w http.ResponseWriter, r *http.Request) {
	hole, ok := holeParam(w, r)
	if !ok {
		return
	}
	round, err := h.service.ReopenHole(r.Context(), hole)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

func (h *RoundHandlers) HandleSaveProgress(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.SaveProgress(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPersistResponse(outcome))
}

func (h *RoundHandlers) HandleFinishRound(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.FinishRound(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPersistResponse(outcome))
}

func (h *RoundHandlers) HandleScorecard(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.Scorecard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// HandleListHistory serves GET /api/rounds/history?since=RFC3339&limit=N.
func (h *RoundHandlers) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	var opts roundservice.HistoryOptions
	if since := r.URL.Query().Get("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be an RFC3339 timestamp")
			return
		}
		opts.Since = t
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}

	result, err := h.service.LoadHistory(r.Context(), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := historyResponse{Rounds: result.Rounds, Source: result.Source}
	if result.Warning != nil {
		resp.Warning = result.Warning.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RoundHandlers) HandleContinueRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.service.ContinueRound(r.Context(), chi.URLParam(r, "roundID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

func (h *RoundHandlers) HandleReopenRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.service.ReopenFinishedRound(r.Context(), chi.URLParam(r, "roundID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

// HandleDeleteRound serves DELETE /api/rounds/history/{roundID}. The optional
// externalId query parameter also removes the remote copy.
func (h *RoundHandlers) HandleDeleteRound(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.DeleteRound(r.Context(), chi.URLParam(r, "roundID"), r.URL.Query().Get("externalId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPersistResponse(outcome))
}

func holeParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "hole must be a number")
		return 0, false
	}
	return hole, true
}

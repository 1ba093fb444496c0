package roundhandlers

import (
	"net/http"

	scoringdomain "github.com/Black-And-White-Club/golfcard/app/modules/scoring/domain"
)

// HandicapRequest asks for a playing handicap, optionally scaled by Percentage.
type HandicapRequest struct {
	HandicapIndex float64 `json:"handicapIndex"`
	Slope         float64 `json:"slope"`
	Rating        float64 `json:"rating"`
	Par           int     `json:"par"`
	Percentage    int     `json:"percentage,omitempty"`
}

type StablefordRequest struct {
	Gross           int `json:"gross"`
	Par             int `json:"par"`
	PlayingHandicap int `json:"playingHandicap"`
	HandicapRank    int `json:"handicapRank"`
}

type StablefordResponse struct {
	Received int `json:"received"`
	Net      int `json:"net"`
	Points   int `json:"points"`
}

type SindicatoRequest struct {
	Scores       []scoringdomain.NetScore `json:"scores"`
	PlayerCount  int                      `json:"playerCount,omitempty"`
	Distribution []float64                `json:"distribution,omitempty"`
}

type TeamRequest struct {
	Entries []scoringdomain.TeamEntry `json:"entries"`
	Format  scoringdomain.TeamFormat  `json:"format"`
	scoringdomain.TeamConfig
}

func (h *RoundHandlers) HandleHandicap(w http.ResponseWriter, r *http.Request) {
	var req HandicapRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res := scoringdomain.PlayingHandicap(req.HandicapIndex, req.Slope, req.Rating, req.Par)
	if req.Percentage > 0 && req.Percentage != 100 {
		res.Value = scoringdomain.ScaleHandicap(res.Value, req.Percentage)
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *RoundHandlers) HandleStableford(w http.ResponseWriter, r *http.Request) {
	var req StablefordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	received := scoringdomain.StrokesReceived(req.PlayingHandicap, req.HandicapRank)
	writeJSON(w, http.StatusOK, StablefordResponse{
		Received: received,
		Net:      scoringdomain.NetStrokes(req.Gross, received),
		Points:   scoringdomain.StablefordPoints(req.Gross, req.Par, received),
	})
}

func (h *RoundHandlers) HandleSindicato(w http.ResponseWriter, r *http.Request) {
	var req SindicatoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	count := req.PlayerCount
	if count == 0 {
		count = len(req.Scores)
	}
	writeJSON(w, http.StatusOK, scoringdomain.SindicatoPoints(req.Scores, count, req.Distribution))
}

func (h *RoundHandlers) HandleTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	format := req.Format
	if format == "" {
		format = scoringdomain.BestBall
	}
	if !format.Valid() {
		writeError(w, http.StatusBadRequest, "unknown team format: "+string(format))
		return
	}
	writeJSON(w, http.StatusOK, scoringdomain.TeamPoints(req.Entries, format, req.TeamConfig))
}

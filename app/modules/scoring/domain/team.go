package scoringdomain

import (
	"math"
	"slices"
	"strconv"
)

// Team tags a player's side in team play.
type Team string

const (
	TeamNone Team = ""
	TeamA    Team = "A"
	TeamB    Team = "B"
)

// TeamFormat selects how team results are compared on a hole.
type TeamFormat string

const (
	BestBall    TeamFormat = "bestBall"
	GoodBadBall TeamFormat = "goodBadBall"
)

// Valid reports whether f is a known team format.
func (f TeamFormat) Valid() bool {
	return f == BestBall || f == GoodBadBall
}

// Match status strings.
const (
	StatusNeutral   = "-"
	StatusAllSquare = "A/S"
)

// Good/bad ball point values used when TeamConfig leaves them unset.
const (
	DefaultBestBall  = 2.0
	DefaultWorstBall = 1.0
)

// TeamEntry is one player's net score with their team.
type TeamEntry struct {
	PlayerID string `json:"playerId"`
	Team     Team   `json:"team"`
	Net      int    `json:"netScore"`
}

// TeamConfig holds the good/bad ball point values. Zero values use the defaults.
type TeamConfig struct {
	BestBallPoints  float64 `json:"bestBallPoints,omitempty"`
	WorstBallPoints float64 `json:"worstBallPoints,omitempty"`
}

// TeamResult is the outcome of one hole of team play.
type TeamResult struct {
	TeamA  float64 `json:"teamA"`
	TeamB  float64 `json:"teamB"`
	Status string  `json:"status"`
	Winner Team    `json:"winner,omitempty"`
}

// TeamPoints scores a single hole between teams A and B. If either team has
// no members the result is neutral.
func TeamPoints(entries []TeamEntry, format TeamFormat, cfg TeamConfig) TeamResult {
	var a, b []int
	for _, e := range entries {
		switch e.Team {
		case TeamA:
			a = append(a, e.Net)
		case TeamB:
			b = append(b, e.Net)
		}
	}
	if len(a) == 0 || len(b) == 0 {
		return TeamResult{Status: StatusNeutral}
	}

	if format == GoodBadBall {
		return goodBadBall(a, b, cfg)
	}
	return bestBall(a, b)
}

func bestBall(a, b []int) TeamResult {
	bestA, bestB := slices.Min(a), slices.Min(b)
	switch {
	case bestA < bestB:
		return TeamResult{TeamA: 1, Status: "1UP", Winner: TeamA}
	case bestB < bestA:
		return TeamResult{TeamB: 1, Status: "1UP", Winner: TeamB}
	default:
		return TeamResult{TeamA: 0.5, TeamB: 0.5, Status: StatusAllSquare}
	}
}

func goodBadBall(a, b []int, cfg TeamConfig) TeamResult {
	bestPts := cfg.BestBallPoints
	if bestPts == 0 {
		bestPts = DefaultBestBall
	}
	worstPts := cfg.WorstBallPoints
	if worstPts == 0 {
		worstPts = DefaultWorstBall
	}

	var res TeamResult
	award(&res, slices.Min(a), slices.Min(b), bestPts)
	award(&res, slices.Max(a), slices.Max(b), worstPts)

	diff := res.TeamA - res.TeamB
	switch {
	case diff == 0:
		res.Status = StatusAllSquare
	case diff > 0:
		res.Status = upStatus(diff)
		res.Winner = TeamA
	default:
		res.Status = upStatus(diff)
		res.Winner = TeamB
	}
	return res
}

func award(res *TeamResult, a, b int, points float64) {
	switch {
	case a < b:
		res.TeamA += points
	case b < a:
		res.TeamB += points
	default:
		res.TeamA += points / 2
		res.TeamB += points / 2
	}
}

func upStatus(diff float64) string {
	return strconv.FormatFloat(math.Abs(diff), 'f', -1, 64) + "UP"
}

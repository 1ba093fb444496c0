package scoringdomain

import "fmt"

// MatchSummary aggregates per-hole team results into a match-play standing.
type MatchSummary struct {
	PointsA   float64 `json:"pointsA"`
	PointsB   float64 `json:"pointsB"`
	HolesWonA int     `json:"holesWonA"`
	HolesWonB int     `json:"holesWonB"`
	Halved    int     `json:"halved"`
	Played    int     `json:"played"`
	Status    string  `json:"status"`
	Winner    Team    `json:"winner,omitempty"`
	Decided   bool    `json:"decided"`
}

// SummarizeMatch folds hole results, played in order, into a match standing
// for a round of holesInRound holes.
func SummarizeMatch(holeResults []TeamResult, holesInRound int) MatchSummary {
	var m MatchSummary
	for _, r := range holeResults {
		m.Played++
		m.PointsA += r.TeamA
		m.PointsB += r.TeamB
		switch r.Winner {
		case TeamA:
			m.HolesWonA++
		case TeamB:
			m.HolesWonB++
		default:
			m.Halved++
		}
	}

	lead := m.HolesWonA - m.HolesWonB
	leader := TeamA
	if lead < 0 {
		lead, leader = -lead, TeamB
	}
	remaining := max(holesInRound-m.Played, 0)

	switch {
	case lead > 0 && lead > remaining:
		m.Decided = true
		m.Winner = leader
		if remaining > 0 {
			m.Status = fmt.Sprintf("%d&%d", lead, remaining)
		} else {
			m.Status = fmt.Sprintf("%dUP", lead)
		}
	case remaining == 0 && lead == 0:
		m.Decided = true
		m.Status = StatusAllSquare
	case lead > 0:
		m.Status = fmt.Sprintf("%s %dUP thru %d", leader, lead, m.Played)
	default:
		m.Status = fmt.Sprintf("%s thru %d", StatusAllSquare, m.Played)
	}
	return m
}

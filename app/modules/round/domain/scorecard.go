package rounddomain

import (
	"slices"

	scoringdomain "github.com/Black-And-White-Club/golfcard/app/modules/scoring/domain"
)

// HoleLine is one player's derived result on one hole.
type HoleLine struct {
	Hole      int     `json:"hole"`
	Par       int     `json:"par"`
	Strokes   int     `json:"strokes"`
	Putts     int     `json:"putts"`
	Received  int     `json:"received"`
	Net       int     `json:"net"`
	Points    int     `json:"points"`
	Sindicato float64 `json:"sindicato"`
	Confirmed bool    `json:"confirmed"`
}

// Totals sums confirmed holes.
type Totals struct {
	Strokes   int     `json:"strokes"`
	Putts     int     `json:"putts"`
	Points    int     `json:"points"`
	Sindicato float64 `json:"sindicato"`
}

func (t *Totals) add(l HoleLine) {
	t.Strokes += l.Strokes
	t.Putts += l.Putts
	t.Points += l.Points
	t.Sindicato += l.Sindicato
}

// PlayerCard is a player's scorecard.
type PlayerCard struct {
	PlayerID        string                          `json:"playerId"`
	Name            string                          `json:"name"`
	PlayingHandicap int                             `json:"playingHandicap"`
	Team            scoringdomain.Team              `json:"team,omitempty"`
	Out             Totals                          `json:"out"`
	In              Totals                          `json:"in"`
	Total           Totals                          `json:"total"`
	HolesPlayed     int                             `json:"holesPlayed"`
	VersusHandicap  int                             `json:"versusHandicap"`
	Scratch         scoringdomain.ScoreDistribution `json:"scratch"`
	Net             scoringdomain.ScoreDistribution `json:"net"`
	Holes           []HoleLine                      `json:"holes"`
}

// Standing is a player's place in the classification.
type Standing struct {
	Position int     `json:"position"`
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Gap      float64 `json:"gap"`
}

// TeamHole is the team result of one confirmed hole.
type TeamHole struct {
	Hole   int                      `json:"hole"`
	Result scoringdomain.TeamResult `json:"result"`
}

// Scorecard is the derived view of a round.
type Scorecard struct {
	RoundID        string                      `json:"roundId"`
	Mode           GameMode                    `json:"mode"`
	Players        []PlayerCard                `json:"players"`
	Classification []Standing                  `json:"classification,omitempty"`
	TeamHoles      []TeamHole                  `json:"teamHoles,omitempty"`
	Match          *scoringdomain.MatchSummary `json:"match,omitempty"`
}

// BuildScorecard derives totals, distributions and standings. Only confirmed
// holes contribute.
func BuildScorecard(r *Round) Scorecard {
	card := Scorecard{
		RoundID: r.ID,
		Mode:    r.Settings.Mode(),
		Players: make([]PlayerCard, len(r.Players)),
	}

	sindicato := sindicatoByHole(r)

	for i, p := range r.Players {
		pc := PlayerCard{
			PlayerID:        p.ID,
			Name:            p.Name,
			PlayingHandicap: p.PlayingHandicap,
			Team:            p.Team,
			Holes:           make([]HoleLine, 0, len(r.Holes)),
		}

		for _, h := range r.Holes {
			s := p.Scores[h.Number]
			received := scoringdomain.StrokesReceived(p.PlayingHandicap, h.HandicapRank)
			line := HoleLine{
				Hole:      h.Number,
				Par:       h.Par,
				Strokes:   s.Strokes,
				Putts:     s.Putts,
				Received:  received,
				Net:       scoringdomain.NetStrokes(s.Strokes, received),
				Points:    scoringdomain.StablefordPoints(s.Strokes, h.Par, received),
				Sindicato: sindicato[h.Number][p.ID],
				Confirmed: r.IsHoleConfirmed(h.Number),
			}
			pc.Holes = append(pc.Holes, line)

			if !line.Confirmed {
				continue
			}
			if h.Number <= 9 {
				pc.Out.add(line)
			} else {
				pc.In.add(line)
			}
			pc.Total.add(line)
			pc.HolesPlayed++
			if s.Strokes > 0 {
				pc.Scratch.Add(s.Strokes - h.Par)
				pc.Net.Add(line.Net - h.Par)
			}
		}

		pc.VersusHandicap = pc.Total.Points - 2*pc.HolesPlayed
		card.Players[i] = pc
	}

	if card.Mode == ModeTeam {
		card.TeamHoles, card.Match = teamResults(r)
	} else if len(card.Players) >= 2 {
		card.Classification = classify(card.Mode, card.Players)
	}

	return card
}

// netFor is a player's net score on hole h, or NoScore without strokes.
func netFor(p Player, h Hole) int {
	s, ok := p.Scores[h.Number]
	if !ok || s.Strokes <= 0 {
		return scoringdomain.NoScore
	}
	return scoringdomain.NetStrokes(s.Strokes, scoringdomain.StrokesReceived(p.PlayingHandicap, h.HandicapRank))
}

func sindicatoByHole(r *Round) map[int]map[string]float64 {
	game, ok := r.Settings.Game.(SindicatoGame)
	if !ok {
		return nil
	}

	out := make(map[int]map[string]float64, len(r.CompletedHoles))
	for _, h := range r.Holes {
		if !r.IsHoleConfirmed(h.Number) {
			continue
		}
		scores := make([]scoringdomain.NetScore, len(r.Players))
		for i, p := range r.Players {
			scores[i] = scoringdomain.NetScore{PlayerID: p.ID, Net: netFor(p, h)}
		}
		out[h.Number] = scoringdomain.SindicatoPoints(scores, len(r.Players), game.Distribution).Points
	}
	return out
}

func teamResults(r *Round) ([]TeamHole, *scoringdomain.MatchSummary) {
	game, _ := r.Settings.Game.(TeamGame)
	format := game.Format
	if !format.Valid() {
		format = scoringdomain.BestBall
	}

	var holes []TeamHole
	for _, h := range r.Holes {
		if !r.IsHoleConfirmed(h.Number) {
			continue
		}
		entries := make([]scoringdomain.TeamEntry, len(r.Players))
		for i, p := range r.Players {
			entries[i] = scoringdomain.TeamEntry{PlayerID: p.ID, Team: p.Team, Net: netFor(p, h)}
		}
		holes = append(holes, TeamHole{Hole: h.Number, Result: scoringdomain.TeamPoints(entries, format, game.Config())})
	}

	results := make([]scoringdomain.TeamResult, len(holes))
	for i, th := range holes {
		results[i] = th.Result
	}
	match := scoringdomain.SummarizeMatch(results, len(r.Holes))
	return holes, &match
}

func classify(mode GameMode, players []PlayerCard) []Standing {
	lowerWins := mode == ModeStroke

	standings := make([]Standing, len(players))
	for i, pc := range players {
		standings[i] = Standing{PlayerID: pc.PlayerID, Name: pc.Name, Value: classificationValue(mode, pc)}
	}

	slices.SortStableFunc(standings, func(a, b Standing) int {
		switch {
		case a.Value == b.Value:
			return 0
		case (a.Value < b.Value) == lowerWins:
			return -1
		default:
			return 1
		}
	})

	leader := standings[0].Value
	for i := range standings {
		if i > 0 && standings[i].Value == standings[i-1].Value {
			standings[i].Position = standings[i-1].Position
		} else {
			standings[i].Position = i + 1
		}
		if lowerWins {
			standings[i].Gap = standings[i].Value - leader
		} else {
			standings[i].Gap = leader - standings[i].Value
		}
	}
	return standings
}

func classificationValue(mode GameMode, pc PlayerCard) float64 {
	switch mode {
	case ModeStroke:
		return float64(pc.Total.Strokes)
	case ModeSindicato:
		return pc.Total.Sindicato
	default:
		return float64(pc.Total.Points)
	}
}

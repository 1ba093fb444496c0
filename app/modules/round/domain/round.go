package rounddomain

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"time"

	scoringdomain "github.com/Black-And-White-Club/golfcard/app/modules/scoring/domain"
)

// SelectHoles returns the holes of course played under length, ordered by number.
func SelectHoles(holes []Hole, length CourseLength) ([]Hole, error) {
	sorted := slices.Clone(holes)
	slices.SortFunc(sorted, func(a, b Hole) int { return cmp.Compare(a.Number, b.Number) })

	var keep func(Hole) bool
	switch length {
	case "", Length18:
		keep = func(Hole) bool { return true }
	case LengthFront9:
		keep = func(h Hole) bool { return h.Number >= 1 && h.Number <= 9 }
	case LengthBack9:
		keep = func(h Hole) bool { return h.Number >= 10 && h.Number <= 18 }
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidHoleRange, length)
	}

	selected := make([]Hole, 0, len(sorted))
	for _, h := range sorted {
		if keep(h) {
			selected = append(selected, h)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHoleRange, length)
	}
	return selected, nil
}

// NewRound snapshots the course holes, computes every playing handicap and
// pre-seeds each hole with par strokes and two putts. Settings are expected to
// have had WithDefaults applied.
func NewRound(id string, date time.Time, course Course, players []PlayerSetup, settings Settings) (*Round, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings = settings.WithDefaults(Defaults{})

	holes, err := SelectHoles(course.Holes, settings.CourseLength)
	if err != nil {
		return nil, err
	}

	r := &Round{
		ID:             id,
		Date:           date,
		Course:         CourseRef{ID: course.ID, Name: course.Name, Par: course.Par},
		Holes:          holes,
		Players:        make([]Player, 0, len(players)),
		Settings:       settings,
		CompletedHoles: []int{},
	}

	for _, setup := range players {
		p := Player{
			ID:            setup.ID,
			Name:          setup.Name,
			HandicapIndex: setup.HandicapIndex,
			Tee:           setup.Tee,
			Team:          setup.Team,
			Scores:        make(map[int]Score, len(holes)),
		}
		p.PlayingHandicap, p.HandicapDefaulted, p.HandicapReason = playingHandicap(setup, course.Par, settings)
		for _, h := range holes {
			p.Scores[h.Number] = Score{Strokes: h.Par, Putts: DefaultPutts}
		}
		r.Players = append(r.Players, p)
	}

	return r, nil
}

func playingHandicap(setup PlayerSetup, par int, settings Settings) (int, bool, string) {
	if !settings.UseHandicap {
		return 0, false, ""
	}
	if setup.PlayingHandicapOverride != nil {
		return *setup.PlayingHandicapOverride, false, ""
	}

	res := scoringdomain.PlayingHandicap(setup.HandicapIndex, setup.Tee.Slope, setup.Tee.Rating, par)
	value := res.Value
	if settings.HandicapPercentage != FullHandicapPercentage {
		value = scoringdomain.ScaleHandicap(value, settings.HandicapPercentage)
	}
	return value, res.Defaulted, res.Reason
}

// State reports the round's lifecycle position.
func (r *Round) State() State {
	switch {
	case r.IsFinished:
		return StateFinished
	case len(r.Holes) == 0:
		return StateSetup
	default:
		return StateInProgress
	}
}

// Hole returns the snapshot of hole number n.
func (r *Round) Hole(n int) (Hole, bool) {
	for _, h := range r.Holes {
		if h.Number == n {
			return h, true
		}
	}
	return Hole{}, false
}

// Player returns a pointer to the player with id so callers can mutate scores.
func (r *Round) Player(id string) (*Player, bool) {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i], true
		}
	}
	return nil, false
}

// UpdateScore sets one field of a player's score. Values are stored as given.
func (r *Round) UpdateScore(playerID string, hole int, field ScoreField, value int) error {
	p, ok := r.Player(playerID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if _, ok := r.Hole(hole); !ok {
		return fmt.Errorf("%w: %d", ErrHoleNotInRound, hole)
	}

	if p.Scores == nil {
		p.Scores = make(map[int]Score)
	}
	score := p.Scores[hole]
	switch field {
	case FieldStrokes:
		score.Strokes = value
	case FieldPutts:
		score.Putts = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScoreField, field)
	}
	p.Scores[hole] = score
	return nil
}

// ConfirmHole marks a hole complete. It reports false when it already was.
func (r *Round) ConfirmHole(hole int) (bool, error) {
	if _, ok := r.Hole(hole); !ok {
		return false, fmt.Errorf("%w: %d", ErrHoleNotInRound, hole)
	}
	if r.IsHoleConfirmed(hole) {
		return false, nil
	}
	r.CompletedHoles = append(r.CompletedHoles, hole)
	return true, nil
}

// ReopenHole unmarks a hole. Scores are left untouched.
func (r *Round) ReopenHole(hole int) bool {
	i := slices.Index(r.CompletedHoles, hole)
	if i < 0 {
		return false
	}
	r.CompletedHoles = slices.Delete(r.CompletedHoles, i, i+1)
	return true
}

// IsHoleConfirmed reports whether hole counts towards totals.
func (r *Round) IsHoleConfirmed(hole int) bool {
	return slices.Contains(r.CompletedHoles, hole)
}

// Finish marks the round finished.
func (r *Round) Finish() { r.IsFinished = true }

// Reopen returns a finished round to play.
func (r *Round) Reopen() { r.IsFinished = false }

// Clone returns a deep copy of the round.
func (r *Round) Clone() *Round {
	if r == nil {
		return nil
	}
	c := *r
	c.Holes = slices.Clone(r.Holes)
	c.CompletedHoles = slices.Clone(r.CompletedHoles)
	if c.CompletedHoles == nil {
		c.CompletedHoles = []int{}
	}
	if sg, ok := r.Settings.Game.(SindicatoGame); ok {
		sg.Distribution = slices.Clone(sg.Distribution)
		c.Settings.Game = sg
	}
	c.Players = make([]Player, len(r.Players))
	for i, p := range r.Players {
		p.Scores = maps.Clone(p.Scores)
		c.Players[i] = p
	}
	return &c
}

// SameRound reports whether two rounds are the same record, matching on the
// external id when both have one and on the local id otherwise.
func SameRound(a, b *Round) bool {
	if a == nil || b == nil {
		return false
	}
	if a.ExternalID != "" && b.ExternalID != "" {
		return a.ExternalID == b.ExternalID
	}
	return a.ID == b.ID
}

package rounddomain

import (
	"encoding/json"
	"fmt"

	scoringdomain "github.com/Black-And-White-Club/golfcard/app/modules/scoring/domain"
)

// GameMode identifies the scoring game played in a round.
type GameMode string

const (
	ModeStableford GameMode = "stableford"
	ModeStroke     GameMode = "stroke"
	ModeSindicato  GameMode = "sindicato"
	ModeTeam       GameMode = "team"
)

// Built-in handicap allowances, in percent.
const (
	FullHandicapPercentage      = 100
	SindicatoHandicapPercentage = 75
)

// GameConfig is the mode-specific part of a round's settings.
type GameConfig interface {
	Mode() GameMode
}

type StablefordGame struct{}

type StrokePlayGame struct{}

// SindicatoGame optionally overrides the points table. Empty uses the default
// table for the player count.
type SindicatoGame struct {
	Distribution []float64 `json:"distribution,omitempty"`
}

// TeamGame plays A against B under Format.
type TeamGame struct {
	Format          scoringdomain.TeamFormat `json:"format"`
	BestBallPoints  float64                  `json:"bestBallPoints,omitempty"`
	WorstBallPoints float64                  `json:"worstBallPoints,omitempty"`
}

func (StablefordGame) Mode() GameMode { return ModeStableford }
func (StrokePlayGame) Mode() GameMode { return ModeStroke }
func (SindicatoGame) Mode() GameMode  { return ModeSindicato }
func (TeamGame) Mode() GameMode       { return ModeTeam }

// Config returns the point values used by the team scorer.
func (g TeamGame) Config() scoringdomain.TeamConfig {
	return scoringdomain.TeamConfig{BestBallPoints: g.BestBallPoints, WorstBallPoints: g.WorstBallPoints}
}

// CourseLength selects which holes of a course are played.
type CourseLength string

const (
	Length18     CourseLength = "18"
	LengthFront9 CourseLength = "front9"
	LengthBack9  CourseLength = "back9"
)

// Settings configure how a round is scored.
type Settings struct {
	UseHandicap bool
	// HandicapPercentage of 0 means unset.
	HandicapPercentage int
	CourseLength       CourseLength
	Game               GameConfig
}

// Defaults carries configured percentages applied to unset settings.
type Defaults struct {
	HandicapPercentage          int
	SindicatoHandicapPercentage int
}

// Mode returns the round's game mode, Stableford when none is set.
func (s Settings) Mode() GameMode {
	if s.Game == nil {
		return ModeStableford
	}
	return s.Game.Mode()
}

// WithDefaults fills unset fields. Sindicato rounds fall back to the Sindicato
// allowance, every other mode to the regular one.
func (s Settings) WithDefaults(d Defaults) Settings {
	if s.Game == nil {
		s.Game = StablefordGame{}
	}
	if s.CourseLength == "" {
		s.CourseLength = Length18
	}
	if s.HandicapPercentage == 0 {
		if s.Mode() == ModeSindicato {
			s.HandicapPercentage = orDefault(d.SindicatoHandicapPercentage, SindicatoHandicapPercentage)
		} else {
			s.HandicapPercentage = orDefault(d.HandicapPercentage, FullHandicapPercentage)
		}
	}
	return s
}

// Validate checks the discriminated parts of the settings.
func (s Settings) Validate() error {
	switch s.CourseLength {
	case "", Length18, LengthFront9, LengthBack9:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHoleRange, s.CourseLength)
	}

	switch g := s.Game.(type) {
	case nil, StablefordGame, StrokePlayGame, SindicatoGame:
	case TeamGame:
		if !g.Format.Valid() {
			return fmt.Errorf("%w: team format %q", ErrInvalidGameMode, g.Format)
		}
	default:
		return fmt.Errorf("%w: %T", ErrInvalidGameMode, s.Game)
	}

	if s.HandicapPercentage < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHandicap, s.HandicapPercentage)
	}
	return nil
}

func orDefault(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

type settingsJSON struct {
	UseHandicap        *bool           `json:"useHandicap,omitempty"`
	HandicapPercentage int             `json:"handicapPercentage,omitempty"`
	CourseLength       CourseLength    `json:"courseLength,omitempty"`
	GameMode           GameMode        `json:"gameMode"`
	Game               json.RawMessage `json:"game,omitempty"`
}

// MarshalJSON writes the game config under "game" tagged by "gameMode".
func (s Settings) MarshalJSON() ([]byte, error) {
	out := settingsJSON{
		UseHandicap:        &s.UseHandicap,
		HandicapPercentage: s.HandicapPercentage,
		CourseLength:       s.CourseLength,
		GameMode:           s.Mode(),
	}
	if s.Game != nil {
		raw, err := json.Marshal(s.Game)
		if err != nil {
			return nil, err
		}
		out.Game = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the game config selected by "gameMode". A document
// without "useHandicap" plays off handicap.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var in settingsJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	game, err := decodeGame(in.GameMode, in.Game)
	if err != nil {
		return err
	}

	useHandicap := true
	if in.UseHandicap != nil {
		useHandicap = *in.UseHandicap
	}

	*s = Settings{
		UseHandicap:        useHandicap,
		HandicapPercentage: in.HandicapPercentage,
		CourseLength:       in.CourseLength,
		Game:               game,
	}
	return nil
}

func decodeGame(mode GameMode, raw json.RawMessage) (GameConfig, error) {
	switch mode {
	case "", ModeStableford:
		return StablefordGame{}, nil
	case ModeStroke:
		return StrokePlayGame{}, nil
	case ModeSindicato:
		var g SindicatoGame
		if err := unmarshalGame(raw, &g); err != nil {
			return nil, err
		}
		return g, nil
	case ModeTeam:
		g := TeamGame{Format: scoringdomain.BestBall}
		if err := unmarshalGame(raw, &g); err != nil {
			return nil, err
		}
		if !g.Format.Valid() {
			return nil, fmt.Errorf("%w: team format %q", ErrInvalidGameMode, g.Format)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidGameMode, mode)
	}
}

func unmarshalGame(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode game config: %w", err)
	}
	return nil
}

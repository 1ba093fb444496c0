package rounddomain

import (
	"time"

	scoringdomain "github.com/Black-And-White-Club/golfcard/app/modules/scoring/domain"
)

// Tee is a set of tee markers with its difficulty ratings.
type Tee struct {
	Name   string  `json:"name"`
	Slope  float64 `json:"slope"`
	Rating float64 `json:"rating"`
}

// Hole is one hole of a course. HandicapRank 1 is the hardest hole.
type Hole struct {
	Number       int `json:"number"`
	Par          int `json:"par"`
	HandicapRank int `json:"handicap"`
	Distance     int `json:"distance"`
}

// Course is the course record supplied by the course collaborator.
type Course struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NumHoles int    `json:"numHoles"`
	Par      int    `json:"par"`
	Tees     []Tee  `json:"tees"`
	Holes    []Hole `json:"holes"`
}

// CourseRef is the denormalised course snapshot stored on a round.
type CourseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Par  int    `json:"par"`
}

// Score is one player's result on one hole.
type Score struct {
	Strokes int `json:"strokes"`
	Putts   int `json:"putts"`
}

// ScoreField names an editable Score field.
type ScoreField string

const (
	FieldStrokes ScoreField = "strokes"
	FieldPutts   ScoreField = "putts"
)

// DefaultPutts is the putt count pre-seeded on every hole.
const DefaultPutts = 2

// Player is a participant in a round.
type Player struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	HandicapIndex     float64            `json:"handicapIndex"`
	Tee               Tee                `json:"teeBox"`
	PlayingHandicap   int                `json:"playingHandicap"`
	HandicapDefaulted bool               `json:"handicapDefaulted,omitempty"`
	HandicapReason    string             `json:"handicapReason,omitempty"`
	Team              scoringdomain.Team `json:"team,omitempty"`
	Scores            map[int]Score      `json:"scores"`
}

// PlayerSetup describes a player before the round starts.
type PlayerSetup struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	HandicapIndex float64            `json:"handicapIndex"`
	Tee           Tee                `json:"teeBox"`
	Team          scoringdomain.Team `json:"team,omitempty"`
	// PlayingHandicapOverride replaces the computed playing handicap.
	PlayingHandicapOverride *int `json:"playingHandicap,omitempty"`
}

// State is the lifecycle position of a round.
type State string

const (
	StateSetup      State = "setup"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

// Round owns its players and their scores. Holes are a snapshot of the course
// taken at start and never refer back to it.
type Round struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Course         CourseRef `json:"course"`
	Holes          []Hole    `json:"holes"`
	Players        []Player  `json:"players"`
	Settings       Settings  `json:"settings"`
	CompletedHoles []int     `json:"completedHoles"`
	IsFinished     bool      `json:"isFinished"`
	ExternalID     string    `json:"externalId,omitempty"`
	// PendingSync is set while the latest local state has not reached the
	// remote store.
	PendingSync bool `json:"pendingSync,omitempty"`
}

package testutils

import (
	"fmt"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	scoringdomain "github.com/Black-And-White-Club/golfcard/app/modules/scoring/domain"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(s),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GenerateCourse builds an 18 hole course with a plausible par layout and a
// permutation of stroke indexes.
func (g *TestDataGenerator) GenerateCourse() rounddomain.Course {
	ranks := make([]int, 18)
	for i := range ranks {
		ranks[i] = i + 1
	}
	g.faker.ShuffleInts(ranks)

	course := rounddomain.Course{
		ID:   uuid.NewString(),
		Name: fmt.Sprintf("%s Golf Club", g.faker.City()),
	}
	for i := 0; i < 18; i++ {
		par := []int{3, 4, 4, 4, 5}[g.faker.Number(0, 4)]
		course.Holes = append(course.Holes, rounddomain.Hole{
			Number:       i + 1,
			Par:          par,
			HandicapRank: ranks[i],
		})
		course.Par += par
	}
	return course
}

// GeneratePlayers builds count players with handicap indexes between 0 and
// 36 and alternating teams.
func (g *TestDataGenerator) GeneratePlayers(count int) []rounddomain.PlayerSetup {
	players := make([]rounddomain.PlayerSetup, count)
	for i := range players {
		team := scoringdomain.TeamA
		if i%2 == 1 {
			team = scoringdomain.TeamB
		}
		players[i] = rounddomain.PlayerSetup{
			ID:            uuid.NewString(),
			Name:          g.faker.FirstName(),
			HandicapIndex: float64(g.faker.Number(0, 360)) / 10,
			Tee: rounddomain.Tee{
				Name:   "Yellow",
				Slope:  float64(g.faker.Number(113, 140)),
				Rating: 70 + float64(g.faker.Number(0, 40))/10,
			},
			Team: team,
		}
	}
	return players
}

// GenerateRound starts a round on a generated course and scores the first
// holesPlayed holes with strokes between par-1 and par+3.
func (g *TestDataGenerator) GenerateRound(players int, holesPlayed int, date time.Time) (*rounddomain.Round, error) {
	round, err := rounddomain.NewRound(uuid.NewString(), date, g.GenerateCourse(), g.GeneratePlayers(players), rounddomain.Settings{UseHandicap: true})
	if err != nil {
		return nil, err
	}
	for _, hole := range round.Holes[:min(holesPlayed, len(round.Holes))] {
		for _, p := range round.Players {
			strokes := hole.Par + g.faker.Number(-1, 3)
			if err := round.UpdateScore(p.ID, hole.Number, rounddomain.FieldStrokes, strokes); err != nil {
				return nil, err
			}
		}
		if _, err := round.ConfirmHole(hole.Number); err != nil {
			return nil, err
		}
	}
	return round, nil
}

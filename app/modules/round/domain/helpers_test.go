package rounddomain

import "time"

var testPars = []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 5, 4}

var testDate = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testCourse(n int) Course {
	c := Course{
		ID:       "course-1",
		Name:     "Las Colinas",
		NumHoles: n,
		Tees:     []Tee{{Name: "Amarillas", Slope: 125, Rating: 71.2}},
	}
	for i := 0; i < n; i++ {
		c.Holes = append(c.Holes, Hole{Number: i + 1, Par: testPars[i], HandicapRank: i + 1, Distance: 300 + 10*i})
		c.Par += testPars[i]
	}
	return c
}

func setup(id string) PlayerSetup {
	return PlayerSetup{ID: id, Name: "Player " + id, HandicapIndex: 10, Tee: Tee{Name: "Amarillas", Slope: 125, Rating: 71.2}}
}

func intPtr(v int) *int { return &v }

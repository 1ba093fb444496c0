package scoringdomain

// ScoreDistribution counts holes by score relative to par.
type ScoreDistribution struct {
	EaglesOrBetter int `json:"eaglesOrBetter"`
	Birdies        int `json:"birdies"`
	Pars           int `json:"pars"`
	Bogeys         int `json:"bogeys"`
	DoubleBogeys   int `json:"doubleBogeys"`
	Worse          int `json:"worse"`
}

// Add records one hole played toPar strokes relative to par.
func (d *ScoreDistribution) Add(toPar int) {
	switch {
	case toPar <= -2:
		d.EaglesOrBetter++
	case toPar == -1:
		d.Birdies++
	case toPar == 0:
		d.Pars++
	case toPar == 1:
		d.Bogeys++
	case toPar == 2:
		d.DoubleBogeys++
	default:
		d.Worse++
	}
}

// Total is the number of holes recorded.
func (d ScoreDistribution) Total() int {
	return d.EaglesOrBetter + d.Birdies + d.Pars + d.Bogeys + d.DoubleBogeys + d.Worse
}

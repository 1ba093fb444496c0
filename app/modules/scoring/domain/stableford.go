package scoringdomain

// NetStrokes is gross strokes less the handicap strokes received.
func NetStrokes(gross, received int) int {
	return gross - received
}

// StablefordPoints converts a gross score on one hole into Stableford points.
func StablefordPoints(gross, par, received int) int {
	diff := NetStrokes(gross, received) - par
	switch {
	case diff <= -3:
		return 5
	case diff == -2:
		return 4
	case diff == -1:
		return 3
	case diff == 0:
		return 2
	case diff == 1:
		return 1
	default:
		return 0
	}
}

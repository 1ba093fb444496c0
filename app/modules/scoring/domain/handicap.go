package scoringdomain

import "math"

// StandardSlope is the slope rating of a course of average difficulty.
const StandardSlope = 113.0

// Reasons reported when a playing handicap could not be computed.
const (
	ReasonMissingIndex  = "missing handicap index"
	ReasonMissingSlope  = "missing slope rating"
	ReasonMissingRating = "missing course rating"
	ReasonMissingPar    = "missing course par"
)

// HandicapResult is a playing handicap together with how it was obtained.
// Defaulted results carry Value 0 and the first missing input as Reason.
type HandicapResult struct {
	Value     int    `json:"value"`
	Defaulted bool   `json:"defaulted"`
	Reason    string `json:"reason,omitempty"`
}

// PlayingHandicap applies the WHS course handicap formula
// round(index * slope/113 + (rating - par)).
//
// Every input is required; a zero input yields a defaulted 0 instead of an error.
func PlayingHandicap(handicapIndex, slope, rating float64, par int) HandicapResult {
	switch {
	case handicapIndex == 0:
		return defaulted(ReasonMissingIndex)
	case slope == 0:
		return defaulted(ReasonMissingSlope)
	case rating == 0:
		return defaulted(ReasonMissingRating)
	case par == 0:
		return defaulted(ReasonMissingPar)
	}

	course := handicapIndex*(slope/StandardSlope) + (rating - float64(par))
	return HandicapResult{Value: int(math.Round(course))}
}

// ScaleHandicap returns round(playingHandicap * percentage / 100).
func ScaleHandicap(playingHandicap, percentage int) int {
	return int(math.Round(float64(playingHandicap) * float64(percentage) / 100))
}

func defaulted(reason string) HandicapResult {
	return HandicapResult{Value: 0, Defaulted: true, Reason: reason}
}

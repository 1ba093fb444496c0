package scoringdomain

// HolesPerAllocation is the number of holes a playing handicap is spread over.
const HolesPerAllocation = 18

// StrokesReceived returns the handicap strokes a player gets on a hole of the
// given difficulty rank (1 = hardest). Negative handicaps are clamped to 0.
func StrokesReceived(playingHandicap, holeRank int) int {
	if playingHandicap <= 0 {
		return 0
	}

	strokes := playingHandicap / HolesPerAllocation
	if holeRank <= playingHandicap%HolesPerAllocation {
		strokes++
	}
	return strokes
}

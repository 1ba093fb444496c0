package scoringdomain

import (
	"cmp"
	"math"
	"slices"
)

// NoScore is the net score of a player who has not entered strokes for a hole.
// It sorts after every real score.
const NoScore = math.MaxInt32

// NetScore is one player's net result on a hole.
type NetScore struct {
	PlayerID string `json:"playerId"`
	Net      int    `json:"netScore"`
}

// SindicatoResult maps player ids to the points they earned on a hole.
// DefaultedTable is set when an auto-generated table was used because the
// player count has no built-in table and none was supplied.
type SindicatoResult struct {
	Points         map[string]float64 `json:"points"`
	DefaultedTable bool               `json:"defaultedTable"`
}

var defaultTables = map[int][]float64{
	2: {2, 0},
	3: {4, 2, 1},
	4: {4, 2, 1, 0},
}

// DefaultDistribution returns the built-in points table for playerCount and
// whether it had to be generated.
func DefaultDistribution(playerCount int) ([]float64, bool) {
	if table, ok := defaultTables[playerCount]; ok {
		return slices.Clone(table), false
	}

	table := make([]float64, max(playerCount, 0))
	for rank := range table {
		table[rank] = float64(max(0, playerCount-rank-1))
	}
	return table, true
}

// SindicatoPoints ranks scores by net (lower is better) and hands out the
// distribution by rank. Tied players share the sum of the slots they occupy.
// A nil or empty distribution selects the default table for playerCount.
func SindicatoPoints(scores []NetScore, playerCount int, distribution []float64) SindicatoResult {
	result := SindicatoResult{Points: make(map[string]float64, len(scores))}

	table := distribution
	if len(table) == 0 {
		table, result.DefaultedTable = DefaultDistribution(playerCount)
	}

	sorted := slices.Clone(scores)
	slices.SortStableFunc(sorted, func(a, b NetScore) int {
		return cmp.Compare(a.Net, b.Net)
	})

	for rank := 0; rank < len(sorted); {
		tied := 1
		for rank+tied < len(sorted) && sorted[rank+tied].Net == sorted[rank].Net {
			tied++
		}

		var pool float64
		for slot := rank; slot < rank+tied; slot++ {
			if slot < len(table) {
				pool += table[slot]
			}
		}

		share := pool / float64(tied)
		for _, s := range sorted[rank : rank+tied] {
			result.Points[s.PlayerID] = share
		}
		rank += tied
	}

	return result
}

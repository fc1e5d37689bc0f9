package recommend

import (
	"cmp"
	"slices"
)

// candidate is a catalogue position and its current score.
type candidate struct {
	index int
	score float64
}

// sortDesc orders candidates by descending score, keeping the existing
// order between equal scores.
func sortDesc(cs []candidate) {
	slices.SortStableFunc(cs, func(a, b candidate) int {
		return cmp.Compare(b.score, a.score)
	})
}

// rankAll returns every index with its score, best first. Ties keep
// ascending index order.
func rankAll(scores []float64) []candidate {
	cs := make([]candidate, len(scores))
	for i, s := range scores {
		cs[i] = candidate{index: i, score: s}
	}
	sortDesc(cs)
	return cs
}

// topK returns the k best candidates by score. A non-positive k yields none.
func topK(scores []float64, k int) []candidate {
	if k <= 0 {
		return nil
	}
	cs := rankAll(scores)
	if k < len(cs) {
		cs = cs[:k]
	}
	return cs
}

// truncate limits cs to at most n entries.
func truncate(cs []candidate, n int) []candidate {
	if n <= 0 {
		return nil
	}
	if n < len(cs) {
		return cs[:n]
	}
	return cs
}

// windowIndexes extracts the catalogue positions of cs.
func windowIndexes(cs []candidate) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.index
	}
	return out
}

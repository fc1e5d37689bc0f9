package fuzzy

import (
	"github.com/xrash/smetrics"
)

// indelDistance counts the insertions and deletions needed to turn a into b.
func indelDistance(a, b string) int {
	return smetrics.WagnerFischer(a, b, 1, 1, 2)
}

// Ratio returns the normalized Indel similarity of a and b.
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 100 * (1 - float64(indelDistance(a, b))/float64(total))
}

// PartialRatio returns the best Ratio between the shorter string and any
// equally long window of the longer one. Windows clipped at either end of
// the longer string are considered too.
func PartialRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	if len(a) == len(b) {
		return max(partialRatio(a, b), partialRatio(b, a))
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	return partialRatio(a, b)
}

// partialRatio aligns needle inside haystack; len(needle) <= len(haystack).
func partialRatio(needle, haystack string) float64 {
	n, h := len(needle), len(haystack)
	best := 0.0

	consider := func(window string) bool {
		if score := Ratio(needle, window); score > best {
			best = score
		}
		return best == 100
	}

	// Clipped windows at the start.
	for i := 1; i < n; i++ {
		if consider(haystack[:i]) {
			return best
		}
	}
	// Full windows.
	for i := 0; i+n <= h; i++ {
		if consider(haystack[i : i+n]) {
			return best
		}
	}
	// Clipped windows at the end.
	for i := h - n + 1; i < h; i++ {
		if consider(haystack[i:]) {
			return best
		}
	}
	return best
}

package fuzzy

const (
	unbaseScale = 0.95
	// Length ratio below which whole-string scorers are trusted.
	partialThreshold = 1.5
	// Length ratio at which partial matches are heavily discounted.
	longRatio = 8.0
)

// WRatio combines the scorers weighted by how different the input lengths are.
// Either string being empty scores 0.
func WRatio(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	lenRatio := float64(longer) / float64(shorter)

	end := Ratio(a, b)
	if lenRatio < partialThreshold {
		return max(end, TokenRatio(a, b)*unbaseScale)
	}

	partialScale := 0.9
	if lenRatio >= longRatio {
		partialScale = 0.6
	}

	end = max(end, PartialRatio(a, b)*partialScale)
	return max(end, PartialTokenRatio(a, b)*unbaseScale*partialScale)
}

package fuzzy

// Scorer rates the similarity of two strings on a 0 to 100 scale.
type Scorer func(a, b string) float64

// Match is the best candidate found by a Matcher.
type Match struct {
	Value string
	Score float64
	Index int
}

// Matcher finds the candidate most similar to a query.
// Implementations must be safe for concurrent use.
type Matcher interface {
	// BestMatch returns the highest scoring candidate with score >= cutoff.
	// Ties keep the earliest candidate. ok is false when nothing qualifies.
	BestMatch(query string, candidates []string, cutoff float64) (match Match, ok bool)
}

// ScorerMatcher is a Matcher backed by a Scorer.
type ScorerMatcher struct {
	scorer Scorer
}

var _ Matcher = (*ScorerMatcher)(nil)

// NewMatcher returns a Matcher using scorer, or WRatio when scorer is nil.
func NewMatcher(scorer Scorer) *ScorerMatcher {
	if scorer == nil {
		scorer = WRatio
	}
	return &ScorerMatcher{scorer: scorer}
}

// BestMatch scans candidates in order and stops early on a perfect score.
func (m *ScorerMatcher) BestMatch(query string, candidates []string, cutoff float64) (Match, bool) {
	best := Match{Index: -1}
	for i, c := range candidates {
		score := m.scorer(query, c)
		if score < cutoff || (best.Index >= 0 && score <= best.Score) {
			continue
		}
		best = Match{Value: c, Score: score, Index: i}
		if score == 100 {
			break
		}
	}
	return best, best.Index >= 0
}

package fuzzy

import (
	"slices"
	"strings"
)

func sortedTokens(s string) []string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return tokens
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		set[t] = struct{}{}
	}
	return set
}

func joinSorted(set map[string]struct{}) string {
	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// TokenSortRatio compares a and b after sorting their whitespace-separated tokens.
func TokenSortRatio(a, b string) float64 {
	return Ratio(strings.Join(sortedTokens(a), " "), strings.Join(sortedTokens(b), " "))
}

// TokenSetRatio compares the shared tokens of a and b against each side's
// remainder. One token set being a subset of the other scores 100.
func TokenSetRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersect := make(map[string]struct{})
	diffAB := make(map[string]struct{})
	diffBA := make(map[string]struct{})
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersect[t] = struct{}{}
		} else {
			diffAB[t] = struct{}{}
		}
	}
	for t := range setB {
		if _, ok := setA[t]; !ok {
			diffBA[t] = struct{}{}
		}
	}

	if len(intersect) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	ab, ba := joinSorted(diffAB), joinSorted(diffBA)
	result := 0.0
	if len(ab)+len(ba) > 0 {
		result = 100 * (1 - float64(indelDistance(ab, ba))/float64(len(ab)+len(ba)))
	}

	sectLen := len(joinSorted(intersect))
	if sectLen == 0 {
		return result
	}

	// sect vs sect+" "+diff differ only by the appended diff.
	sectAB := sectLen + 1 + len(ab)
	sectBA := sectLen + 1 + len(ba)
	abRatio := 100 * (1 - float64(1+len(ab))/float64(sectLen+sectAB))
	baRatio := 100 * (1 - float64(1+len(ba))/float64(sectLen+sectBA))

	return max(result, abRatio, baRatio)
}

// TokenRatio is the better of TokenSortRatio and TokenSetRatio.
func TokenRatio(a, b string) float64 {
	return max(TokenSortRatio(a, b), TokenSetRatio(a, b))
}

// PartialTokenRatio runs PartialRatio over sorted tokens. Sharing any token
// scores 100.
func PartialTokenRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	for t := range setA {
		if _, ok := setB[t]; ok {
			return 100
		}
	}
	return PartialRatio(strings.Join(sortedTokens(a), " "), strings.Join(sortedTokens(b), " "))
}

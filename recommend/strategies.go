package recommend

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/intent"
)

const (
	personBoost = 0.25
	genreBoost  = 0.07
	likeWeight  = 0.1
)

// collection lists entries whose title contains the phrase, by year when
// any year parses, otherwise by title.
func (e *Engine) collection(in intent.Intent, topN int) []candidate {
	type member struct {
		index int
		year  float64
		hasYr bool
		title string
	}

	var members []member
	anyYear := false
	for i, title := range e.index.Titles() {
		if !strings.Contains(title, in.Phrase) {
			continue
		}
		entry := e.index.Entry(i)
		yr, ok := parseYear(entry.Year)
		anyYear = anyYear || ok
		members = append(members, member{index: i, year: yr, hasYr: ok, title: entry.Title})
	}

	if anyYear {
		// Unparseable years sort last.
		slices.SortStableFunc(members, func(a, b member) int {
			switch {
			case a.hasYr && b.hasYr:
				return cmp.Compare(a.year, b.year)
			case a.hasYr:
				return -1
			case b.hasYr:
				return 1
			}
			return 0
		})
	} else {
		slices.SortStableFunc(members, func(a, b member) int {
			return strings.Compare(a.title, b.title)
		})
	}

	out := make([]candidate, 0, min(topN, len(members)))
	for _, m := range members {
		if len(out) == topN {
			break
		}
		out = append(out, candidate{index: m.index})
	}
	return out
}

// title ranks neighbours of the reference entry, excluding the reference.
func (e *Engine) title(in intent.Intent, topN int) ([]candidate, error) {
	scores, err := e.index.Matrix().RowCosine(in.Reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrOracle, err)
	}
	scores[in.Reference] = math.Inf(-1)

	ranked := rankAll(scores)
	// The sentinel sorts last; drop it so it is never returned.
	ranked = slices.DeleteFunc(ranked, func(c candidate) bool {
		return c.index == in.Reference
	})
	return truncate(ranked, topN), nil
}

// person boosts candidates whose director or cast contains the name.
func (e *Engine) person(ctx context.Context, in intent.Intent, topN int, mon Monitor) ([]candidate, error) {
	window, err := e.semanticWindow(ctx, in.Query, topN, mon)
	if err != nil {
		return nil, err
	}

	for i := range window {
		entry := e.index.Entry(window[i].index)
		if containsFold(entry.Director, in.Person) || containsFold(entry.Cast, in.Person) {
			window[i].score += personBoost
			mon.Boosted(window[i].index, personBoost)
		}
	}

	sortDesc(window)
	return truncate(window, topN), nil
}

// general applies genre and "like <title>" boosts to the semantic window.
func (e *Engine) general(ctx context.Context, in intent.Intent, topN int, mon Monitor) ([]candidate, error) {
	window, err := e.semanticWindow(ctx, in.Query, topN, mon)
	if err != nil {
		return nil, err
	}

	var likeScores []float64
	if in.Like >= 0 {
		likeScores, err = e.index.Matrix().RowCosine(in.Like)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrOracle, err)
		}
	}

	for i := range window {
		idx := window[i].index
		boost := 0.0
		if len(in.Genres) > 0 {
			genre := strings.ToLower(e.index.Entry(idx).Genre)
			for _, kw := range in.Genres {
				if strings.Contains(genre, kw) {
					boost += genreBoost
				}
			}
		}
		if likeScores != nil {
			boost += likeWeight * likeScores[idx]
		}
		if boost != 0 {
			window[i].score += boost
			mon.Boosted(idx, boost)
		}
	}

	sortDesc(window)
	return truncate(window, topN), nil
}

// semanticWindow embeds the query and returns the top overfetch×topN
// entries by raw cosine similarity.
func (e *Engine) semanticWindow(ctx context.Context, query string, topN int, mon Monitor) ([]candidate, error) {
	vector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", core.ErrOracle, err)
	}

	scores, err := e.index.Matrix().Cosine(vector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrOracle, err)
	}

	// Bound topN by the catalogue size before scaling so the product cannot overflow.
	window := topK(scores, e.overfetch*min(topN, e.index.Len()))
	mon.AfterSemanticSearch(windowIndexes(window))
	return window, nil
}

// parseYear reads a numeric year such as "1977" or "1977.0".
func parseYear(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// containsFold reports whether sub occurs in s ignoring case.
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

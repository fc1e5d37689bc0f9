package recommend

import (
	"github.com/poiesic/cinematch/catalogue"
	"github.com/poiesic/cinematch/core"
)

// project maps ranked candidates to result rows in the given order.
// Unscored rows carry a nil Score.
func project(index *catalogue.Index, ranked []candidate, scored bool) []core.Result {
	results := make([]core.Result, len(ranked))
	for i, c := range ranked {
		e := index.Entry(c.index)
		results[i] = core.Result{
			Title:    e.Title,
			Director: e.Director,
			Cast:     e.Cast,
			Genre:    e.Genre,
			Year:     e.DisplayYear(),
			Poster:   e.Poster,
			Plot:     e.Plot,
		}
		if scored {
			score := c.score
			results[i].Score = &score
		}
	}
	return results
}

package catalogue

import (
	"fmt"
	"strings"

	"github.com/poiesic/cinematch/core"
)

// SearchDocument renders the text embedded for an entry. Keywords and plot
// are repeated and the title appears at both ends to weight them more
// heavily than cast and crew.
func SearchDocument(e *core.Entry) string {
	doc := fmt.Sprintf(
		"%s. Director: %s. Cast: %s. Genres: %s. Keywords: %s. %s. Plot: %s. %s. Year: %s. %s.",
		e.Title,
		e.Director,
		e.Cast,
		e.Genre,
		e.Keywords, e.Keywords,
		e.Plot, e.Plot,
		e.DisplayYear(),
		e.Title,
	)
	return strings.TrimSpace(doc)
}

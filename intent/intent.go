package intent

import (
	"fmt"
	"strings"
)

// Kind identifies the retrieval strategy for a query.
type Kind int

const (
	General Kind = iota
	Collection
	Title
	Person
)

var kindNames = map[Kind]string{
	General:    "general",
	Collection: "collection",
	Title:      "title",
	Person:     "person",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Intent is a classified query with the parameters its strategy needs.
type Intent struct {
	Kind Kind

	// Query is the trimmed original text.
	Query string

	// Phrase is the franchise phrase of a Collection intent.
	Phrase string

	// Reference is the matched catalogue index of a Title intent, -1 otherwise.
	Reference int
	// TitleScore is the fuzzy score of the Title match.
	TitleScore float64

	// Person is the lower-cased name of a Person intent.
	Person string

	// Genres lists the genre keywords found in a General query.
	Genres []string
	// Like is the catalogue index named by "like <title>" in a General
	// query, -1 when absent or unmatched.
	Like int
}

// String renders the intent for logs and CLI output.
func (i Intent) String() string {
	var b strings.Builder
	b.WriteString(i.Kind.String())
	switch i.Kind {
	case Collection:
		fmt.Fprintf(&b, " phrase=%q", i.Phrase)
	case Title:
		fmt.Fprintf(&b, " reference=%d score=%.1f", i.Reference, i.TitleScore)
	case Person:
		fmt.Fprintf(&b, " person=%q", i.Person)
	case General:
		if len(i.Genres) > 0 {
			fmt.Fprintf(&b, " genres=%s", strings.Join(i.Genres, ","))
		}
		if i.Like >= 0 {
			fmt.Fprintf(&b, " like=%d", i.Like)
		}
	}
	return b.String()
}

package intent

import (
	"regexp"
	"strings"
)

// GenreKeywords is the fixed set of genre words recognised in queries.
var GenreKeywords = []string{
	"action", "comedy", "drama", "thriller", "romance", "sci-fi", "science fiction",
	"fantasy", "horror", "animation", "adventure", "crime", "mystery", "superhero",
}

var (
	collectionPattern = regexp.MustCompile(`^(.+?)\s+(?:collection|series|saga|universe|filmography|set)$`)

	// Tried in order; the first capture group is the name.
	personPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:movies|films?)\s+(?:with|featuring)\s+([a-z .'-]+)`),
		regexp.MustCompile(`([a-z .'-]+)\s+(?:movies|films)(.*)$`),
		regexp.MustCompile(`(?:directed by|by)\s+([a-z .'-]+)(.*)$`),
	}

	likePattern = regexp.MustCompile(`(?:like|similar to)\s+(.+)$`)

	genrePatterns = compileGenrePatterns(GenreKeywords)
)

type genrePattern struct {
	keyword string
	re      *regexp.Regexp
}

func compileGenrePatterns(keywords []string) []genrePattern {
	out := make([]genrePattern, len(keywords))
	for i, kw := range keywords {
		out[i] = genrePattern{keyword: kw, re: regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)}
	}
	return out
}

// query is the normalized form every rule sees.
type query struct {
	text  string // trimmed
	lower string // trimmed and lower-cased
}

// rule inspects a query and fills in an Intent when it applies.
type rule struct {
	kind  Kind
	match func(r *Router, q query, out *Intent) bool
}

// rules is evaluated in order; General is the fallback when none match.
var rules = []rule{
	{kind: Collection, match: matchCollection},
	{kind: Title, match: matchTitle},
	{kind: Person, match: matchPerson},
}

func matchCollection(r *Router, q query, out *Intent) bool {
	m := collectionPattern.FindStringSubmatch(q.lower)
	if m == nil {
		return false
	}
	phrase := strings.TrimSpace(m[1])
	if phrase == "" {
		return false
	}
	for _, title := range r.titles {
		if strings.Contains(title, phrase) {
			out.Phrase = phrase
			return true
		}
	}
	return false
}

func matchTitle(r *Router, q query, out *Intent) bool {
	match, ok := r.matcher.BestMatch(q.lower, r.titles, r.titleCutoff)
	if !ok {
		return false
	}
	out.Reference = match.Index
	out.TitleScore = match.Score
	return true
}

func matchPerson(_ *Router, q query, out *Intent) bool {
	for _, re := range personPatterns {
		m := re.FindStringSubmatch(q.lower)
		if m == nil {
			continue
		}
		if name := strings.TrimSpace(m[1]); name != "" {
			out.Person = name
			return true
		}
	}
	return false
}

// fillGeneral extracts the boost parameters of a General intent.
func fillGeneral(r *Router, q query, out *Intent) {
	for _, g := range genrePatterns {
		if g.re.MatchString(q.lower) {
			out.Genres = append(out.Genres, g.keyword)
		}
	}

	m := likePattern.FindStringSubmatch(q.lower)
	if m == nil {
		return
	}
	phrase := strings.TrimSpace(m[1])
	if phrase == "" {
		return
	}
	if match, ok := r.matcher.BestMatch(phrase, r.titles, r.likeCutoff); ok {
		out.Like = match.Index
	}
}

package intent

import (
	"strings"

	"github.com/poiesic/cinematch/fuzzy"
)

const (
	// DefaultTitleCutoff is the fuzzy score a whole query needs to count as a title.
	DefaultTitleCutoff = 85.0
	// DefaultLikeCutoff is the fuzzy score a "like <title>" phrase needs.
	DefaultLikeCutoff = 75.0
)

// Router classifies queries against a fixed list of catalogue titles.
// It holds no mutable state and is safe for concurrent use.
type Router struct {
	titles      []string
	matcher     fuzzy.Matcher
	titleCutoff float64
	likeCutoff  float64
}

// Option configures a Router.
type Option func(*Router)

// WithMatcher replaces the default WRatio matcher.
func WithMatcher(m fuzzy.Matcher) Option {
	return func(r *Router) {
		if m != nil {
			r.matcher = m
		}
	}
}

// WithTitleCutoff sets the minimum fuzzy score for a Title intent.
func WithTitleCutoff(cutoff float64) Option {
	return func(r *Router) {
		r.titleCutoff = cutoff
	}
}

// WithLikeCutoff sets the minimum fuzzy score for a "like <title>" reference.
func WithLikeCutoff(cutoff float64) Option {
	return func(r *Router) {
		r.likeCutoff = cutoff
	}
}

// NewRouter creates a router over titles, which must already be lower-cased
// and trimmed. The slice is retained and must not be modified.
func NewRouter(titles []string, opts ...Option) *Router {
	r := &Router{
		titles:      titles,
		matcher:     fuzzy.NewMatcher(fuzzy.WRatio),
		titleCutoff: DefaultTitleCutoff,
		likeCutoff:  DefaultLikeCutoff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Classify returns the intent of query. It never fails; unmatched queries
// are General.
func (r *Router) Classify(text string) Intent {
	trimmed := strings.TrimSpace(text)
	q := query{text: trimmed, lower: strings.ToLower(trimmed)}

	for _, rl := range rules {
		out := Intent{Kind: rl.kind, Query: q.text, Reference: -1, Like: -1}
		if rl.match(r, q, &out) {
			return out
		}
	}

	out := Intent{Kind: General, Query: q.text, Reference: -1, Like: -1}
	fillGeneral(r, q, &out)
	return out
}

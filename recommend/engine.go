// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package recommend

import (
	"context"
	"log/slog"

	"github.com/poiesic/cinematch/ai"
	"github.com/poiesic/cinematch/catalogue"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/fuzzy"
	"github.com/poiesic/cinematch/intent"
)

// DefaultOverfetch is the semantic window size as a multiple of N.
const DefaultOverfetch = 3

// Engine answers queries against one catalogue index.
type Engine struct {
	index       *catalogue.Index
	embedder    ai.Embedder
	router      *intent.Router
	matcher     fuzzy.Matcher
	titleCutoff float64
	likeCutoff  float64
	overfetch   int
	monitor     Monitor
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithOverfetch sets how many multiples of N the Person and General
// strategies pull before boosting.
func WithOverfetch(factor int) Option {
	return func(e *Engine) error {
		if factor < 1 {
			return ErrInvalidOverfetch
		}
		e.overfetch = factor
		return nil
	}
}

// WithMatcher replaces the default WRatio fuzzy matcher.
func WithMatcher(m fuzzy.Matcher) Option {
	return func(e *Engine) error {
		if m != nil {
			e.matcher = m
		}
		return nil
	}
}

// WithTitleCutoff sets the fuzzy score needed to treat a query as a title.
func WithTitleCutoff(cutoff float64) Option {
	return func(e *Engine) error {
		e.titleCutoff = cutoff
		return nil
	}
}

// WithLikeCutoff sets the fuzzy score needed for a "like <title>" reference.
func WithLikeCutoff(cutoff float64) Option {
	return func(e *Engine) error {
		e.likeCutoff = cutoff
		return nil
	}
}

// WithMonitor installs a monitor that observes every call.
func WithMonitor(m Monitor) Option {
	return func(e *Engine) error {
		if m != nil {
			e.monitor = m
		}
		return nil
	}
}

// NewEngine creates an engine over index, embedding queries with embedder.
func NewEngine(index *catalogue.Index, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		index:       index,
		embedder:    embedder,
		matcher:     fuzzy.NewMatcher(fuzzy.WRatio),
		titleCutoff: intent.DefaultTitleCutoff,
		likeCutoff:  intent.DefaultLikeCutoff,
		overfetch:   DefaultOverfetch,
		monitor:     &noopMonitor{},
		logger:      slog.Default().With("component", "recommender"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.router = intent.NewRouter(index.Titles(),
		intent.WithMatcher(e.matcher),
		intent.WithTitleCutoff(e.titleCutoff),
		intent.WithLikeCutoff(e.likeCutoff),
	)

	return e, nil
}

// Index returns the catalogue index the engine ranks against.
func (e *Engine) Index() *catalogue.Index {
	return e.index
}

// Classify returns the intent the engine would act on for query.
func (e *Engine) Classify(query string) intent.Intent {
	return e.router.Classify(query)
}

// Recommend returns at most topN rows for query.
// Blank queries fail with core.ErrEmptyQuery, topN < 1 with
// core.ErrInvalidTopN, and embedding failures with core.ErrOracle.
func (e *Engine) Recommend(ctx context.Context, query string, topN int) ([]core.Result, error) {
	return e.RecommendWithMonitor(ctx, query, topN, nil)
}

// RecommendWithMonitor is Recommend with an extra per-call monitor, which
// runs after any monitor installed with WithMonitor.
func (e *Engine) RecommendWithMonitor(ctx context.Context, query string, topN int, monitor Monitor) ([]core.Result, error) {
	if err := core.ValidateQuery(query, topN); err != nil {
		return nil, err
	}

	mon := Monitors(e.monitor, monitor)
	mon.Start(query, topN)

	in := e.router.Classify(query)
	mon.Routed(in)
	e.logger.Debug("query routed", "query", in.Query, "intent", in.String())

	var (
		ranked []candidate
		err    error
		scored = true
	)
	switch in.Kind {
	case intent.Collection:
		ranked = e.collection(in, topN)
		scored = false
	case intent.Title:
		ranked, err = e.title(in, topN)
	case intent.Person:
		ranked, err = e.person(ctx, in, topN, mon)
	default:
		ranked, err = e.general(ctx, in, topN, mon)
	}
	if err != nil {
		e.logger.Error("recommendation failed", "query", in.Query, "intent", in.Kind.String(), "err", err)
		mon.Failed(err)
		return nil, err
	}

	results := project(e.index, ranked, scored)
	mon.Finish(results)
	return results, nil
}

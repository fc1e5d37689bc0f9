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


package cinematch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/cinematch/ai"
	"github.com/poiesic/cinematch/ai/openai"
	"github.com/poiesic/cinematch/catalogue"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/recommend"
	"github.com/poiesic/cinematch/storage"
	"github.com/poiesic/cinematch/storage/badger"
)

// Recommender owns everything needed to answer queries against one
// catalogue: the embedding provider, the embedding cache and the engine.
type Recommender struct {
	backend  *badger.Backend
	cache    storage.EmbeddingCache
	provider ai.AIProvider
	index    *catalogue.Index
	engine   *recommend.Engine
	logger   *slog.Logger
}

// Option configures a Recommender.
type Option func(*options)

type options struct {
	aiConfig        *ai.Config
	provider        ai.AIProvider
	breakerObserver ai.StateChangeFunc
	cacheEnabled    bool
	cachePath       string
	cacheTTL        time.Duration
	retryAttempts   int
	retryDelay      time.Duration
	progress        io.Writer
	engineOpts      []recommend.Option
	logger          *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(cfg *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = cfg
	}
}

// WithProvider uses an existing provider instead of connecting to the
// configured embedding service. The Recommender closes it on Close.
func WithProvider(p ai.AIProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithBreakerObserver is notified when the embedding circuit breaker
// changes state.
func WithBreakerObserver(fn ai.StateChangeFunc) Option {
	return func(o *options) {
		o.breakerObserver = fn
	}
}

// WithCache enables the embedding cache. An empty path keeps it in memory.
func WithCache(path string, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheEnabled = true
		o.cachePath = path
		o.cacheTTL = ttl
	}
}

// WithoutCache embeds every text on every call.
func WithoutCache() Option {
	return func(o *options) {
		o.cacheEnabled = false
	}
}

// WithRetry retries the startup bulk embed.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryDelay = delay
	}
}

// WithProgress writes startup embedding progress to w.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithEngineOptions passes options through to recommend.NewEngine.
func WithEngineOptions(opts ...recommend.Option) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open loads the catalogue at path and builds a Recommender over it.
func Open(ctx context.Context, path string, opts ...Option) (*Recommender, error) {
	dataset, err := catalogue.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, dataset.Entries, opts...)
}

// New embeds entries and builds a Recommender over them.
func New(ctx context.Context, entries []core.Entry, opts ...Option) (*Recommender, error) {
	o := &options{
		aiConfig:      ai.DefaultConfig(),
		cacheEnabled:  true,
		retryAttempts: 1,
		retryDelay:    time.Second,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	r := &Recommender{logger: o.logger}

	provider := o.provider
	if provider == nil {
		if err := o.aiConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
		var err error
		provider, err = openai.NewProvider(o.aiConfig, openai.WithBreakerObserver(o.breakerObserver))
		if err != nil {
			return nil, err
		}
	}
	r.provider = provider

	embedder := provider.Embedder()
	if o.cacheEnabled {
		backend, err := badger.OpenBackend(o.cachePath, o.cachePath == "")
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to open embedding cache: %w", err)
		}
		r.backend = backend

		cache, err := badger.NewEmbeddingCache(backend, badger.WithTTL(o.cacheTTL), badger.WithCacheLogger(o.logger))
		if err != nil {
			r.Close()
			return nil, err
		}
		r.cache = cache

		caching, err := ai.NewCachingEmbedder(embedder, cache, provider.Model())
		if err != nil {
			r.Close()
			return nil, err
		}
		embedder = caching
	}

	buildOpts := []catalogue.Option{
		catalogue.WithRetry(o.retryAttempts, o.retryDelay),
		catalogue.WithLogger(o.logger.With("component", "catalogue")),
	}
	if o.progress != nil {
		buildOpts = append(buildOpts, catalogue.WithProgress(o.progress))
	}
	index, err := catalogue.Build(ctx, entries, embedder, buildOpts...)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.index = index

	engineOpts := append([]recommend.Option{recommend.WithLogger(o.logger.With("component", "recommender"))}, o.engineOpts...)
	engine, err := recommend.NewEngine(index, embedder, engineOpts...)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.engine = engine

	return r, nil
}

// Close releases the provider, the cache and its backend, in that order.
func (r *Recommender) Close() error {
	var errs []error

	if r.provider != nil {
		if err := r.provider.Close(); err != nil {
			r.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	if r.cache != nil {
		if err := r.cache.Close(); err != nil {
			r.logger.Error("error closing embedding cache", "err", err)
			errs = append(errs, err)
		}
	}
	if r.backend != nil {
		if err := r.backend.Close(); err != nil {
			r.logger.Error("error closing cache backend", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Engine returns the recommendation engine.
func (r *Recommender) Engine() *recommend.Engine {
	return r.engine
}

// Index returns the catalogue index.
func (r *Recommender) Index() *catalogue.Index {
	return r.index
}

// Model returns the embedding model identifier.
func (r *Recommender) Model() string {
	return r.provider.Model()
}

// Recommend is shorthand for Engine().Recommend.
func (r *Recommender) Recommend(ctx context.Context, query string, topN int) ([]core.Result, error) {
	return r.engine.Recommend(ctx, query, topN)
}

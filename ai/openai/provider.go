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


package openai

import (
	"log/slog"

	"github.com/poiesic/cinematch/ai"
)

// Provider implements ai.AIProvider using OpenAI-compatible APIs.
type Provider struct {
	config  *ai.Config
	base    *Embedder
	pooled  *ai.PooledEmbedder
	breaker *ai.BreakerEmbedder
	logger  *slog.Logger
}

// ProviderOption configures a Provider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	onStateChange ai.StateChangeFunc
}

// WithBreakerObserver registers a callback for circuit breaker transitions.
func WithBreakerObserver(fn ai.StateChangeFunc) ProviderOption {
	return func(o *providerOptions) {
		o.onStateChange = fn
	}
}

// NewProvider creates a new OpenAI provider with the given configuration.
// Returns ai.AIProvider interface to enforce abstraction.
func NewProvider(config *ai.Config, opts ...ProviderOption) (ai.AIProvider, error) {
	return newProvider(config, opts...)
}

func newProvider(config *ai.Config, opts ...ProviderOption) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var o providerOptions
	for _, opt := range opts {
		opt(&o)
	}

	base, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	pooled, err := ai.NewPooledEmbedder(base, config.BatchSize, config.PoolSize)
	if err != nil {
		return nil, err
	}

	breaker, err := ai.NewBreakerEmbedder(pooled, "embedder", config.BreakerFailures, config.BreakerTimeout, o.onStateChange)
	if err != nil {
		pooled.Release()
		return nil, err
	}

	return &Provider{
		config:  config,
		base:    base,
		pooled:  pooled,
		breaker: breaker,
		logger:  slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the pooled, circuit-broken embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.breaker
}

// Model returns the configured embedding model.
func (p *Provider) Model() string {
	return p.config.EmbeddingModel
}

// Close releases the worker pool.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	p.pooled.Release()
	return nil
}

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


package config

import (
	"net"
	"strconv"
	"time"

	"github.com/poiesic/cinematch/ai"
)

// Config is the application configuration for the cinematch binary.
type Config struct {
	Catalogue CatalogueConfig `koanf:"catalogue"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogueConfig locates the catalogue and controls the startup embed.
type CatalogueConfig struct {
	// Path is a CSV or JSON catalogue file.
	Path string `koanf:"path" validate:"required"`

	// RetryAttempts bounds attempts at the startup bulk embed.
	RetryAttempts int           `koanf:"retry_attempts" validate:"gte=1"`
	RetryDelay    time.Duration `koanf:"retry_delay" validate:"gte=0"`
}

// EmbeddingConfig describes the OpenAI-compatible embedding service.
type EmbeddingConfig struct {
	Host            string        `koanf:"host" validate:"required,url"`
	Model           string        `koanf:"model" validate:"required"`
	APIToken        string        `koanf:"api_token"`
	BatchSize       int           `koanf:"batch_size" validate:"gte=1"`
	PoolSize        int           `koanf:"pool_size" validate:"gte=1"`
	BreakerFailures uint32        `koanf:"breaker_failures" validate:"gte=1"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

// CacheConfig controls the embedding cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`

	// Path is the cache directory. Empty keeps the cache in memory.
	Path string `koanf:"path"`

	// TTL expires cached vectors. Zero keeps them forever.
	TTL time.Duration `koanf:"ttl" validate:"gte=0"`
}

// RecommendConfig tunes ranking.
type RecommendConfig struct {
	TopN        int     `koanf:"top_n" validate:"gte=1"`
	MaxTopN     int     `koanf:"max_top_n" validate:"gtefield=TopN"`
	Overfetch   int     `koanf:"overfetch" validate:"gte=1"`
	TitleCutoff float64 `koanf:"title_cutoff" validate:"gte=0,lte=100"`
	LikeCutoff  float64 `koanf:"like_cutoff" validate:"gte=0,lte=100"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`

	// RateLimit is requests per RateWindow per client IP. Zero disables it.
	RateLimit  int           `koanf:"rate_limit" validate:"gte=0"`
	RateWindow time.Duration `koanf:"rate_window" validate:"gt=0"`
}

// LoggingConfig sets the slog level.
type LoggingConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	embedding := ai.DefaultConfig()
	return &Config{
		Catalogue: CatalogueConfig{
			Path:          "data/processed/Movies_Preprocessed.csv",
			RetryAttempts: 1,
			RetryDelay:    2 * time.Second,
		},
		Embedding: EmbeddingConfig{
			Host:            embedding.EmbeddingHost,
			Model:           embedding.EmbeddingModel,
			APIToken:        embedding.APIToken,
			BatchSize:       embedding.BatchSize,
			PoolSize:        embedding.PoolSize,
			BreakerFailures: embedding.BreakerFailures,
			BreakerTimeout:  embedding.BreakerTimeout,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Recommend: RecommendConfig{
			TopN:        10,
			MaxTopN:     100,
			Overfetch:   3,
			TitleCutoff: 85,
			LikeCutoff:  75,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       0,
			RateWindow:      time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// AIConfig converts the embedding section into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.Embedding.Host),
		ai.WithEmbeddingModel(c.Embedding.Model),
		ai.WithAPIToken(c.Embedding.APIToken),
		ai.WithBatchSize(c.Embedding.BatchSize),
		ai.WithPoolSize(c.Embedding.PoolSize),
		ai.WithBreaker(c.Embedding.BreakerFailures, c.Embedding.BreakerTimeout),
	)
}

// Addr is the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

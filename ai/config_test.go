package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "all-minilm", cfg.EmbeddingModel)
	assert.Equal(t, 64, cfg.BatchSize)
	assert.Equal(t, 4, cfg.PoolSize)
	assert.Equal(t, uint32(5), cfg.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerTimeout)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://custom:8080/v1"),
			WithEmbeddingModel("custom-embed"),
			WithAPIToken("secret"),
			WithBatchSize(16),
			WithPoolSize(2),
			WithBreaker(3, time.Second),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "custom-embed", cfg.EmbeddingModel)
		assert.Equal(t, "secret", cfg.APIToken)
		assert.Equal(t, 16, cfg.BatchSize)
		assert.Equal(t, 2, cfg.PoolSize)
		assert.Equal(t, uint32(3), cfg.BreakerFailures)
		assert.Equal(t, time.Second, cfg.BreakerTimeout)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{name: "adds v1", host: "http://localhost:11434", expected: "http://localhost:11434/v1"},
		{name: "strips trailing slash", host: "http://localhost:11434/", expected: "http://localhost:11434/v1"},
		{name: "keeps v1", host: "http://localhost:11434/v1", expected: "http://localhost:11434/v1"},
		{name: "empty stays empty", host: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.expected, cfg.EmbeddingHost)
			assert.Equal(t, "none", cfg.APIToken)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid default", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing host", mutate: func(c *Config) { c.EmbeddingHost = "" }},
		{name: "missing model", mutate: func(c *Config) { c.EmbeddingModel = "" }},
		{name: "zero batch", mutate: func(c *Config) { c.BatchSize = 0 }},
		{name: "zero pool", mutate: func(c *Config) { c.PoolSize = 0 }},
		{name: "zero breaker failures", mutate: func(c *Config) { c.BreakerFailures = 0 }},
		{name: "zero breaker timeout", mutate: func(c *Config) { c.BreakerTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

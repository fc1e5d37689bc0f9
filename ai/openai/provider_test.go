package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/poiesic/cinematch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbeddingServer answers the OpenAI embeddings endpoint with one
// two-dimensional vector per input, encoding the input position.
func fakeEmbeddingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type datum struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]datum, len(req.Input))
		for i := range req.Input {
			data[i] = datum{Object: "embedding", Embedding: []float32{float32(i), 1}, Index: i}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.NewConfig(ai.WithEmbeddingModel("test-model")))
	require.NoError(t, err)
	defer provider.Close()

	assert.Equal(t, "test-model", provider.Model())
	assert.NotNil(t, provider.Embedder())
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(ai.NewConfig(ai.WithEmbeddingModel("")))
	assert.Error(t, err)
}

func TestEmbedder_EmbedTexts(t *testing.T) {
	server := fakeEmbeddingServer(t)
	defer server.Close()

	embedder, err := NewEmbedder(ai.NewConfig(ai.WithEmbeddingHost(server.URL)))
	require.NoError(t, err)

	vectors, err := embedder.EmbedTexts(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 1}, vectors[1])

	single, err := embedder.EmbedText(context.Background(), "only")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, single)
}

func TestProvider_EmbedsThroughDecorators(t *testing.T) {
	server := fakeEmbeddingServer(t)
	defer server.Close()

	provider, err := NewProvider(ai.NewConfig(
		ai.WithEmbeddingHost(server.URL),
		ai.WithBatchSize(2),
		ai.WithPoolSize(2),
	))
	require.NoError(t, err)
	defer provider.Close()

	vectors, err := provider.Embedder().EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	// The third text is first in its own sub-batch.
	assert.Equal(t, []float32{0, 1}, vectors[2])
}

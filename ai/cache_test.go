package ai_test

import (
	"context"
	"testing"

	"github.com/poiesic/cinematch/ai"
	"github.com/poiesic/cinematch/ai/mock"
	"github.com/poiesic/cinematch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingEmbedder_ServesHitsFromCache(t *testing.T) {
	cache, backend, err := badger.NewMemoryCache()
	require.NoError(t, err)
	defer backend.Close()
	defer cache.Close()

	inner := &mock.MockEmbedder{Dimensions: 4}
	caching, err := ai.NewCachingEmbedder(inner, cache, "model-a")
	require.NoError(t, err)

	ctx := context.Background()
	first, err := caching.EmbedTexts(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.BatchCallCount())

	var seen []string
	inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		seen = append(seen, texts...)
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{1, 0, 0, 0}
		}
		return out, nil
	}

	second, err := caching.EmbedTexts(ctx, []string{"beta", "gamma", "alpha"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma"}, seen)
	assert.Equal(t, first[1], second[0])
	assert.Equal(t, []float32{1, 0, 0, 0}, second[1])
	assert.Equal(t, first[0], second[2])

	single, err := caching.EmbedText(ctx, "gamma")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0, 0}, single)
	assert.Equal(t, []string{"gamma"}, seen)
}

func TestCachingEmbedder_ModelNamespacesKeys(t *testing.T) {
	cache, backend, err := badger.NewMemoryCache()
	require.NoError(t, err)
	defer backend.Close()
	defer cache.Close()

	ctx := context.Background()
	a := &mock.MockEmbedder{Dimensions: 4}
	b := &mock.MockEmbedder{Dimensions: 4}

	ca, err := ai.NewCachingEmbedder(a, cache, "model-a")
	require.NoError(t, err)
	cb, err := ai.NewCachingEmbedder(b, cache, "model-b")
	require.NoError(t, err)

	_, err = ca.EmbedText(ctx, "same text")
	require.NoError(t, err)
	_, err = cb.EmbedText(ctx, "same text")
	require.NoError(t, err)

	assert.Equal(t, 1, a.CallCount())
	assert.Equal(t, 1, b.CallCount())
}

func TestCachingEmbedder_CacheFailureFallsThrough(t *testing.T) {
	cache, backend, err := badger.NewMemoryCache()
	require.NoError(t, err)
	defer backend.Close()
	require.NoError(t, cache.Close())

	inner := &mock.MockEmbedder{Dimensions: 4}
	caching, err := ai.NewCachingEmbedder(inner, cache, "m")
	require.NoError(t, err)

	got, err := caching.EmbedTexts(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNewCachingEmbedder_Validation(t *testing.T) {
	_, err := ai.NewCachingEmbedder(nil, nil, "m")
	assert.ErrorIs(t, err, ai.ErrEmbedderRequired)

	_, err = ai.NewCachingEmbedder(mock.NewMockEmbedder(), nil, "m")
	assert.ErrorIs(t, err, ai.ErrCacheRequired)
}

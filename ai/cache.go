package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/storage"
)

// CachingEmbedder serves vectors from an embedding cache and only sends
// misses to the wrapped embedder. Cache failures are logged and bypassed.
type CachingEmbedder struct {
	inner  Embedder
	cache  storage.EmbeddingCache
	model  string
	logger *slog.Logger
}

var _ Embedder = (*CachingEmbedder)(nil)

// NewCachingEmbedder wraps inner with cache. model namespaces the cache keys
// so vectors from different models never mix.
func NewCachingEmbedder(inner Embedder, cache storage.EmbeddingCache, model string) (*CachingEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}
	return &CachingEmbedder{
		inner:  inner,
		cache:  cache,
		model:  model,
		logger: slog.Default().With("component", "caching-embedder"),
	}, nil
}

func (c *CachingEmbedder) key(text string) core.ID {
	return core.IDFromContent(c.model + "\x00" + text)
}

// EmbedText returns the cached vector for text or embeds and caches it.
func (c *CachingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts resolves cached vectors and embeds all misses in one call.
func (c *CachingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	ids := make([]core.ID, len(texts))
	for i, text := range texts {
		ids[i] = c.key(text)
	}

	result, err := c.cache.GetMany(ctx, ids...)
	if err != nil {
		c.logger.Warn("embedding cache read failed", "err", err)
		result = make([][]float32, len(texts))
	}

	var (
		missTexts []string
		missIdx   []int
	)
	for i, v := range result {
		if v == nil {
			missTexts = append(missTexts, texts[i])
			missIdx = append(missIdx, i)
		}
	}

	c.logger.Debug("embedding cache lookup", "count", len(texts), "misses", len(missTexts))
	reportProgress(ctx, len(texts)-len(missTexts))
	if len(missTexts) == 0 {
		return result, nil
	}

	vectors, err := c.inner.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("%w: sent %d, got %d", ErrVectorCountMismatch, len(missTexts), len(vectors))
	}

	missIDs := make([]core.ID, len(missIdx))
	for j, i := range missIdx {
		result[i] = vectors[j]
		missIDs[j] = ids[i]
	}

	if err := c.cache.PutMany(ctx, missIDs, vectors); err != nil {
		c.logger.Warn("embedding cache write failed", "err", err)
	}

	return result, nil
}

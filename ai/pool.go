package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// PooledEmbedder splits large batches into sub-batches and embeds them
// concurrently on a bounded worker pool. Output order matches input order.
type PooledEmbedder struct {
	inner     Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

var _ Embedder = (*PooledEmbedder)(nil)

// NewPooledEmbedder wraps inner with a pool of poolSize workers, each sending
// at most batchSize texts per request. Call Release when done.
func NewPooledEmbedder(inner Embedder, batchSize, poolSize int) (*PooledEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if batchSize < 1 {
		batchSize = 1
	}
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &PooledEmbedder{
		inner:     inner,
		pool:      pool,
		batchSize: batchSize,
		logger:    slog.Default().With("component", "pooled-embedder"),
	}, nil
}

// EmbedText passes through to the wrapped embedder.
func (p *PooledEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return p.inner.EmbedText(ctx, text)
}

// EmbedTexts embeds texts in sub-batches of at most batchSize.
// The first sub-batch error cancels the remaining work and is returned.
func (p *PooledEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) <= p.batchSize {
		vectors, err := p.inner.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, err
		}
		reportProgress(ctx, len(vectors))
		return vectors, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make([][]float32, len(texts))
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	batches := 0
	for start := 0; start < len(texts); start += p.batchSize {
		end := min(start+p.batchSize, len(texts))
		batches++
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			vectors, err := p.inner.EmbedTexts(ctx, texts[start:end])
			if err != nil {
				fail(err)
				return
			}
			if len(vectors) != end-start {
				fail(fmt.Errorf("%w: sent %d, got %d", ErrVectorCountMismatch, end-start, len(vectors)))
				return
			}
			copy(result[start:end], vectors)
			reportProgress(ctx, len(vectors))
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Debug("embedded texts in sub-batches", "count", len(texts), "batches", batches)
	return result, nil
}

// Release stops the worker pool.
func (p *PooledEmbedder) Release() {
	p.pool.Release()
}

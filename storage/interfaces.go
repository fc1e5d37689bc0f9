package storage

import (
	"context"

	"github.com/poiesic/cinematch/core"
)

// EmbeddingCache stores embedding vectors keyed by content ID.
// Implementations must be thread-safe and support concurrent access.
type EmbeddingCache interface {
	// Get returns the cached vector for id.
	// Returns ErrNotFound if nothing is cached under id.
	Get(ctx context.Context, id core.ID) ([]float32, error)

	// GetMany returns cached vectors for the given IDs. The result has the
	// same length as ids; missing entries are nil.
	GetMany(ctx context.Context, ids ...core.ID) ([][]float32, error)

	// PutMany stores vectors[i] under ids[i].
	PutMany(ctx context.Context, ids []core.ID, vectors [][]float32) error

	// Close releases resources held by the cache.
	Close() error
}

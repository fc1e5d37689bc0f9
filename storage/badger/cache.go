package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/storage"
)

// CacheOption configures an embedding cache.
type CacheOption func(*embeddingCache)

// WithTTL expires cached vectors after ttl. Zero disables expiry.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *embeddingCache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger used by the cache.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *embeddingCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// embeddingCache implements storage.EmbeddingCache on top of a Backend.
// It does not own the backend; closing the cache leaves the backend open.
type embeddingCache struct {
	backend *Backend
	ttl     time.Duration
	logger  *slog.Logger
	closed  atomic.Bool
}

var _ storage.EmbeddingCache = (*embeddingCache)(nil)

// NewEmbeddingCache creates an embedding cache stored in backend.
func NewEmbeddingCache(backend *Backend, opts ...CacheOption) (storage.EmbeddingCache, error) {
	return newEmbeddingCache(backend, opts...)
}

func newEmbeddingCache(backend *Backend, opts ...CacheOption) (*embeddingCache, error) {
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}
	c := &embeddingCache{
		backend: backend,
		logger:  slog.Default().With("component", "embedding-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *embeddingCache) Get(ctx context.Context, id core.ID) ([]float32, error) {
	vectors, err := c.GetMany(ctx, id)
	if err != nil {
		return nil, err
	}
	if vectors[0] == nil {
		return nil, storage.ErrNotFound
	}
	return vectors[0], nil
}

func (c *embeddingCache) GetMany(ctx context.Context, ids ...core.ID) ([][]float32, error) {
	if c.closed.Load() || c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	result := make([][]float32, len(ids))
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		for i, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := tx.Get(makeEmbeddingKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				v, err := storage.UnmarshalVector(val)
				if err != nil {
					return err
				}
				result[i] = v
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *embeddingCache) PutMany(ctx context.Context, ids []core.ID, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("%w: %d ids, %d vectors", storage.ErrLengthMismatch, len(ids), len(vectors))
	}
	if c.closed.Load() || c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	// WriteBatch splits large inputs across transactions.
	wb := c.backend.db.NewWriteBatch()
	defer wb.Cancel()
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := badger.NewEntry(makeEmbeddingKey(id), storage.MarshalVector(vectors[i]))
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		if err := wb.SetEntry(entry); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return err
	}
	c.logger.Debug("cached embeddings", "count", len(ids))
	return nil
}

func (c *embeddingCache) Close() error {
	c.closed.Store(true)
	return nil
}

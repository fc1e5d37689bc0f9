package badger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCache_PutAndGet(t *testing.T) {
	cache, backend, err := NewMemoryCache()
	require.NoError(t, err)
	defer backend.Close()
	defer cache.Close()

	ctx := context.Background()
	ids := []core.ID{core.IDFromContent("a"), core.IDFromContent("b")}
	vectors := [][]float32{{1, 0}, {0.6, 0.8}}

	require.NoError(t, cache.PutMany(ctx, ids, vectors))

	got, err := cache.Get(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, vectors[1], got)
}

func TestEmbeddingCache_GetMissing(t *testing.T) {
	cache, backend, err := NewMemoryCache()
	require.NoError(t, err)
	defer backend.Close()
	defer cache.Close()

	_, err = cache.Get(context.Background(), core.IDFromContent("missing"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEmbeddingCache_GetManyPartial(t *testing.T) {
	cache, backend, err := NewMemoryCache()
	require.NoError(t, err)
	defer backend.Close()
	defer cache.Close()

	ctx := context.Background()
	hit := core.IDFromContent("hit")
	miss := core.IDFromContent("miss")
	require.NoError(t, cache.PutMany(ctx, []core.ID{hit}, [][]float32{{1, 2, 3}}))

	got, err := cache.GetMany(ctx, miss, hit, miss)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Nil(t, got[0])
	assert.Equal(t, []float32{1, 2, 3}, got[1])
	assert.Nil(t, got[2])
}

func TestEmbeddingCache_LengthMismatch(t *testing.T) {
	cache, backend, err := NewMemoryCache()
	require.NoError(t, err)
	defer backend.Close()
	defer cache.Close()

	err = cache.PutMany(context.Background(), []core.ID{1, 2}, [][]float32{{1}})
	assert.ErrorIs(t, err, storage.ErrLengthMismatch)
}

func TestEmbeddingCache_Closed(t *testing.T) {
	cache, backend, err := NewMemoryCache()
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, cache.Close())
	_, err = cache.Get(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	err = cache.PutMany(context.Background(), []core.ID{1}, [][]float32{{1}})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestEmbeddingCache_PersistsAcrossOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()
	id := core.IDFromContent("persisted")

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	cache, err := NewEmbeddingCache(backend, WithTTL(time.Hour))
	require.NoError(t, err)
	require.NoError(t, cache.PutMany(ctx, []core.ID{id}, [][]float32{{0.5, 0.5}}))
	require.NoError(t, cache.Close())
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()
	cache, err = NewEmbeddingCache(backend)
	require.NoError(t, err)

	got, err := cache.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, got)
}

func TestNewEmbeddingCache_NilBackend(t *testing.T) {
	_, err := NewEmbeddingCache(nil)
	assert.Error(t, err)
}

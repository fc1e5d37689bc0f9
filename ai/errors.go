package ai

import "errors"

var (
	// ErrEmbedderRequired indicates a wrapper was constructed without an inner embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrCacheRequired indicates a caching embedder was constructed without a cache.
	ErrCacheRequired = errors.New("embedding cache is required")

	// ErrVectorCountMismatch indicates an embedder returned a different number
	// of vectors than texts it was given.
	ErrVectorCountMismatch = errors.New("embedder returned wrong number of vectors")

	// ErrEmptyEmbedding indicates an embedder returned no vector for a text.
	ErrEmptyEmbedding = errors.New("embedder returned empty vector")
)

// Package similarity computes cosine similarity between query vectors and
// every row of a read-only matrix of catalogue vectors.
//
// The matrix is stored as one contiguous arena of float32 values; rows are
// views into it. Rows are unit-normalized at construction, so cosine
// similarity reduces to a dot product. A Matrix is never mutated after
// NewMatrix returns and is safe for concurrent readers.
package similarity

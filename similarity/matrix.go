package similarity

import (
	"fmt"

	"github.com/poiesic/cinematch/core"
)

// Matrix is a dense row-major arena of unit vectors.
type Matrix struct {
	data []float32
	dim  int
	rows int
}

// NewMatrix copies and normalizes vectors into a single arena.
// All vectors must share one non-zero dimension.
func NewMatrix(vectors [][]float32) (*Matrix, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyMatrix
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: row 0 is empty", ErrDimensionMismatch)
	}

	data := make([]float32, 0, dim*len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
		data = append(data, core.NormalizeVector(v)...)
	}

	return &Matrix{data: data, dim: dim, rows: len(vectors)}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Dim returns the vector dimension.
func (m *Matrix) Dim() int {
	return m.dim
}

// Row returns a read-only view of row i. Callers must not modify it.
func (m *Matrix) Row(i int) ([]float32, error) {
	if i < 0 || i >= m.rows {
		return nil, fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, i, m.rows)
	}
	start := i * m.dim
	return m.data[start : start+m.dim : start+m.dim], nil
}

// Cosine returns the similarity of query against every row, in row order.
// The query is normalized first, so callers may pass raw embeddings.
func (m *Matrix) Cosine(query []float32) ([]float64, error) {
	if len(query) != m.dim {
		return nil, fmt.Errorf("%w: query has %d values, want %d", ErrDimensionMismatch, len(query), m.dim)
	}
	q := core.NormalizeVector(query)

	scores := make([]float64, m.rows)
	for r := 0; r < m.rows; r++ {
		scores[r] = dotProduct(q, m.data[r*m.dim:(r+1)*m.dim])
	}
	return scores, nil
}

// CosineBatch returns one score row per query.
func (m *Matrix) CosineBatch(queries [][]float32) ([][]float64, error) {
	out := make([][]float64, len(queries))
	for i, q := range queries {
		scores, err := m.Cosine(q)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		out[i] = scores
	}
	return out, nil
}

// RowCosine returns the similarity of row i against every row.
func (m *Matrix) RowCosine(i int) ([]float64, error) {
	row, err := m.Row(i)
	if err != nil {
		return nil, err
	}
	return m.Cosine(row)
}

// dotProduct calculates the dot product of two equal-length vectors.
func dotProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

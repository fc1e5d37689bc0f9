package similarity

import "errors"

var (
	// ErrDimensionMismatch indicates vectors of different lengths.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyMatrix indicates a matrix built from no rows.
	ErrEmptyMatrix = errors.New("matrix has no rows")

	// ErrRowOutOfRange indicates a row index outside the matrix.
	ErrRowOutOfRange = errors.New("row index out of range")
)

package core

import "math"

// unitTolerance bounds how far a vector norm may drift from 1.
const unitTolerance = 1e-3

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	magnitude := Norm(v)

	// Can't normalize zero vector
	if magnitude == 0 {
		return make([]float32, len(v))
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result
}

// Norm returns the Euclidean length of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return math.Sqrt(sum)
}

// IsUnit reports whether v has length 1 within floating-point tolerance.
func IsUnit(v []float32) bool {
	return math.Abs(Norm(v)-1) <= unitTolerance
}

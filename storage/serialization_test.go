package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorSerialization(t *testing.T) {
	tests := []struct {
		name   string
		vector []float32
	}{
		{name: "empty", vector: []float32{}},
		{name: "unit", vector: []float32{0.6, 0.8}},
		{name: "special values", vector: []float32{-0.0, float32(math.Inf(1)), 1e-30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalVector(tt.vector)
			assert.Len(t, data, 4+4*len(tt.vector))

			got, err := UnmarshalVector(data)
			require.NoError(t, err)
			assert.Equal(t, tt.vector, got)
		})
	}
}

func TestUnmarshalVector_Truncated(t *testing.T) {
	_, err := UnmarshalVector([]byte{1, 0})
	assert.ErrorIs(t, err, ErrTruncatedData)

	data := MarshalVector([]float32{1, 2, 3})
	_, err = UnmarshalVector(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrSerializationFailed)
	assert.ErrorIs(t, err, ErrTruncatedData)
}

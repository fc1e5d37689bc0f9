// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MarshalVector serializes a vector as a length prefix followed by
// little-endian float32 values.
func MarshalVector(v []float32) []byte {
	buf := make([]byte, 4+4*len(v))
	binary.LittleEndian.PutUint32(buf, uint32(len(v)))
	offset := 4
	for _, f := range v {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(f))
		offset += 4
	}
	return buf
}

// UnmarshalVector deserializes a vector written by MarshalVector.
func UnmarshalVector(data []byte) ([]float32, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %w: missing length prefix", ErrSerializationFailed, ErrTruncatedData)
	}
	n := int(binary.LittleEndian.Uint32(data))
	if len(data)-4 != 4*n {
		return nil, fmt.Errorf("%w: %w: want %d values, have %d bytes", ErrSerializationFailed, ErrTruncatedData, n, len(data)-4)
	}
	v := make([]float32, n)
	offset := 4
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4
	}
	return v, nil
}

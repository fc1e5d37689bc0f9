package badger

import (
	"encoding/binary"

	"github.com/poiesic/cinematch/core"
)

// Key prefixes for different data types
const (
	embeddingPrefix = "embvec:"
)

// makeEmbeddingKey generates a key for a cached embedding by content ID.
// Format: prefix + 8 byte big-endian ID
func makeEmbeddingKey(id core.ID) []byte {
	prefixBytes := []byte(embeddingPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// Package codec encodes state values for the key-value Table backends.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeFloat64 returns the little-endian IEEE-754 encoding of v.
func EncodeFloat64(v float64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}

// DecodeFloat64 is the inverse of EncodeFloat64.
func DecodeFloat64(buf []byte) (float64, error) {
	if len(buf) != 8 {
		return 0, fmt.Errorf("invalid encoded float64 has len %d", len(buf))
	}

	bits := binary.LittleEndian.Uint64(buf)
	return math.Float64frombits(bits), nil
}

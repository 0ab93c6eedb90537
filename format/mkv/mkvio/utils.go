package mkvio

import (
	"encoding/binary"
	"math"
)

func pack(n int, b []byte) uint64 {
	var v uint64
	var k uint64 = (uint64(n) - 1) * 8

	for i := 0; i < n; i++ {
		v |= uint64(b[i]) << k
		k -= 8
	}

	return v
}

// UnmarshalUint decodes a big-endian unsigned element value of 1..8 bytes.
func UnmarshalUint(b []byte) uint64 {
	if len(b) == 0 || len(b) > 8 {
		return 0
	}
	return pack(len(b), b)
}

// UnmarshalFloat decodes a 4 or 8 byte float element value.
func UnmarshalFloat(b []byte) float64 {
	switch len(b) {
	case 4:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b)))
	case 8:
		return math.Float64frombits(binary.BigEndian.Uint64(b))
	default:
		return 0
	}
}

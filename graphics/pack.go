package graphics

import (
	"encoding/binary"
	"math"
)

// Pack encodes values as tightly packed little-endian float32, the layout
// Device.WriteUniform expects.
func Pack(values []float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// Unpack is the inverse of Pack. Trailing bytes that do not form a whole
// value are ignored.
func Unpack(data []byte) []float32 {
	values := make([]float32, len(data)/4)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return values
}

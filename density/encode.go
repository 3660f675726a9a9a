package density

import (
	"encoding/binary"
	"math"
)

// Message payloads for every collective in this package use fixed-width
// little-endian encoding rather than the legacy trick of packing indices
// into float32 buffers: one []int64 for counts and
// indices, one []float32 for distances, kept as two parallel buffers so
// there is no implicit n_rows < 2^24 ceiling.

func encodeInt64s(vs []int64) []byte {
	buf := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return buf
}

func decodeInt64s(buf []byte) []int64 {
	n := len(buf) / 8
	vs := make([]int64, n)
	for i := range vs {
		vs[i] = int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return vs
}

func encodeFloat32s(vs []float32) []byte {
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeFloat32s(buf []byte) []float32 {
	n := len(buf) / 4
	vs := make([]float32, n)
	for i := range vs {
		vs[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vs
}

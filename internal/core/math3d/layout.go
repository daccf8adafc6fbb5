package math3d

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// RowMajor32 returns the elements in storage order as float32. Only hand
// this to consumers that expect row-major data.
func (m Matrix4) RowMajor32() [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// ColumnMajor32 returns the elements transposed into column-major order as
// float32. GL and WebGL uniformMatrix4fv with transpose=false expect this
// layout, so the upload boundary must use it instead of RowMajor32.
func (m Matrix4) ColumnMajor32() [16]float32 {
	return m.Transpose().RowMajor32()
}

// Fingerprint hashes the exact bit pattern of the elements. Equal matrices
// have equal fingerprints; uploaders use it to skip unchanged uniforms.
func (m Matrix4) Fingerprint() uint64 {
	var buf [16 * 8]byte
	for i, v := range m {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return xxhash.Sum64(buf[:])
}

// FromColumnMajor32 is the inverse of ColumnMajor32, up to float32 rounding.
func FromColumnMajor32(cm [16]float32) Matrix4 {
	var m Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[row*4+col] = float64(cm[col*4+row])
		}
	}
	return m
}

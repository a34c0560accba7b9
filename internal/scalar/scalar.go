// Package scalar converts primitive numeric values to and from their raw bit
// patterns. Hashing and snapshot encoding both work on these patterns.
package scalar

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Scalar is the set of primitive key and value types.
type Scalar interface {
	constraints.Integer | constraints.Float
}

const (
	classSigned   = 1
	classUnsigned = 2
	classFloat    = 3
)

// Size returns the width of K in bytes.
func Size[K Scalar]() int {
	var k K
	return int(unsafe.Sizeof(k))
}

// IsFloat reports whether K is a floating point type.
func IsFloat[K Scalar]() bool {
	var one K = 1
	return one/2 != 0
}

// IsSigned reports whether K can hold negative values.
func IsSigned[K Scalar]() bool {
	var zero K
	return zero-1 < 0
}

// Code identifies the shape of K: class in the high nibble, byte width in
// the low nibble. int64 is 0x18, int32 is 0x14, float64 is 0x38.
func Code[K Scalar]() byte {
	class := classUnsigned
	switch {
	case IsFloat[K]():
		class = classFloat
	case IsSigned[K]():
		class = classSigned
	}
	return byte(class<<4 | Size[K]())
}

// Bits returns the raw bit pattern of k, sign extended for signed integers.
func Bits[K Scalar](k K) uint64 {
	if IsFloat[K]() {
		if Size[K]() == 4 {
			return uint64(math.Float32bits(float32(k)))
		}
		return math.Float64bits(float64(k))
	}
	return uint64(k)
}

// FromBits is the inverse of Bits. Integer patterns are truncated to the
// width of K.
func FromBits[K Scalar](b uint64) K {
	if IsFloat[K]() {
		if Size[K]() == 4 {
			return K(math.Float32frombits(uint32(b)))
		}
		return K(math.Float64frombits(b))
	}
	return K(b)
}

// Package bits implements the mask arithmetic used to describe register
// fields.  All functions are pure and work for any of the fixed-width
// unsigned types, at declaration time as well as at runtime.
package bits

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Width returns the size of T in bits.
func Width[T constraints.Unsigned]() uint {
	var v T
	return uint(unsafe.Sizeof(v)) * 8
}

// Mask returns a value with the low width bits set.  A width of zero yields
// zero, a width of at least Width[T]() yields all ones.
func Mask[T constraints.Unsigned](width uint) T {
	if width == 0 {
		return 0
	}
	if width >= Width[T]() {
		return ^T(0)
	}
	return T(1)<<width - 1
}

// ShiftedMask returns Mask(width) shifted left by offset.  Bits shifted
// beyond the top of T are discarded.
func ShiftedMask[T constraints.Unsigned](width, offset uint) T {
	return Mask[T](width) << offset
}

// Fits reports whether value can be stored without loss under limit.
func Fits[T constraints.Unsigned](value, limit T) bool {
	return value <= limit
}

// Aligned reports whether addr is a multiple of align.  align must be a
// power of two.
func Aligned(addr, align uintptr) bool {
	return addr&(align-1) == 0
}

// Package mmio provides typed access to memory-mapped hardware registers.
//
// A cell (R, or one of the U8..U64 aliases) is a fixed-width unsigned
// integer pinned at a memory location.  Cells are not declared directly;
// they are obtained as views into a Device, a byte-addressed memory window
// that is either a range of hardware addresses or, for tests, plain
// allocated memory.
//
// Accesses through a cell are single width-exact loads and stores.  The
// package provides no synchronization: read-modify-write operations
// (StoreBits, SetBits, ClearBits, ToggleBits) are not atomic with respect to
// concurrent writers of the same location.  Callers that share a register
// between contexts must synchronize externally.
package mmio

import "unsafe"

// Uint is the set of representations a register can have.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// R is a register cell of representation T.
type R[T Uint] struct {
	r T
}

// Load returns the value of the cell.
//
//go:nosplit
func (r *R[T]) Load() T {
	return r.r
}

// Store writes v to the cell.
//
//go:nosplit
func (r *R[T]) Store(v T) {
	r.r = v
}

// LoadBits returns the cell value with all bits outside mask cleared.
//
//go:nosplit
func (r *R[T]) LoadBits(mask T) T {
	return r.r & mask
}

// StoreBits replaces the bits selected by mask with the corresponding bits
// of bits, leaving the rest of the cell unchanged.  If mask covers the whole
// cell the read-modify-write degenerates to a plain store.
//
//go:nosplit
func (r *R[T]) StoreBits(mask, bits T) {
	if mask == ^T(0) {
		r.r = bits
		return
	}
	r.r = r.r&^mask | bits&mask
}

// SetBits sets all bits in mask.
//
//go:nosplit
func (r *R[T]) SetBits(mask T) {
	r.r |= mask
}

// ClearBits clears all bits in mask.
//
//go:nosplit
func (r *R[T]) ClearBits(mask T) {
	r.r &^= mask
}

// ToggleBits inverts all bits in mask.
//
//go:nosplit
func (r *R[T]) ToggleBits(mask T) {
	r.r ^= mask
}

// Addr returns the address of the cell.
func (r *R[T]) Addr() uintptr {
	return uintptr(unsafe.Pointer(r))
}

// Cells with concrete representations.
type (
	U8  = R[uint8]
	U16 = R[uint16]
	U32 = R[uint32]
	U64 = R[uint64]
)

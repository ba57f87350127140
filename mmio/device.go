package mmio

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hwio/regbit/bits"
	"github.com/hwio/regbit/debug"
)

var (
	ErrZeroSize   = errors.New("mmio: zero-size window")
	ErrBounds     = errors.New("mmio: out of window bounds")
	ErrMisaligned = errors.New("mmio: misaligned for representation")
)

// Device is a byte-addressed memory window shared by one or more registers,
// e.g. a peripheral's full register file.  Registers are views into the
// window obtained with At.
type Device struct {
	ptr  unsafe.Pointer
	size uintptr
	mem  []byte // keeps simulated or mapped backing alive, nil for raw windows
}

// Map returns a window over size bytes of hardware memory starting at the
// absolute address addr.  The addresses must be mapped in the current
// address space, otherwise accesses through the window will fault.
func Map(addr, size uintptr) (*Device, error) {
	if size == 0 {
		return nil, fmt.Errorf("mmio: map %#x: %w", addr, ErrZeroSize)
	}
	return &Device{ptr: unsafe.Pointer(addr), size: size}, nil
}

// Alloc returns a window over size bytes of allocated memory, aligned for
// any representation.  It backs simulated register files in tests and
// host-side emulation.
func Alloc(size int) *Device {
	if size <= 0 {
		panic("mmio: Alloc with non-positive size")
	}
	words := make([]uint64, (size+7)/8)
	mem := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size)
	debug.AssertAligned(uintptr(unsafe.Pointer(unsafe.SliceData(mem))), 8,
		"mmio: misaligned backing allocation")
	return &Device{ptr: unsafe.Pointer(unsafe.SliceData(mem)), size: uintptr(size), mem: mem}
}

// Base returns the address of the first byte of the window.
func (d *Device) Base() uintptr {
	return uintptr(d.ptr)
}

// Size returns the window size in bytes.
func (d *Device) Size() uintptr {
	return d.size
}

// At returns a view of representation T at byteOffset into the window.  The
// view must lie inside the window and its effective address must be a
// multiple of T's byte size.
func At[T Uint](d *Device, byteOffset uintptr) (*R[T], error) {
	var v T
	n := unsafe.Sizeof(v)
	if byteOffset+n > d.size {
		return nil, fmt.Errorf("mmio: %d byte view at offset %#x in %d byte window: %w",
			n, byteOffset, d.size, ErrBounds)
	}
	if !bits.Aligned(d.Base()+byteOffset, n) {
		return nil, fmt.Errorf("mmio: %d byte view at address %#x: %w",
			n, d.Base()+byteOffset, ErrMisaligned)
	}
	return (*R[T])(unsafe.Add(d.ptr, byteOffset)), nil
}

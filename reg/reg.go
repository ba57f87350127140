// Package reg describes memory-mapped hardware registers and their fields.
//
// A register binds a fixed-width representation (uint8 to uint64) to a fixed
// address.  Fields are named bit ranges within a register; their type
// (RO, RW, WO) is their access capability, so an operation a field does not
// permit does not compile.  All declaration invariants (alignment, widths,
// pack bounds) are checked once when a register or field is declared, never
// per access; the Must variants of the constructors panic on violation and
// are meant for package-level register map declarations.
//
// The package provides no synchronization.  Partial field writes, shadow
// updates and merge-write commits are read-modify-write sequences on shared
// memory; callers that touch a register from more than one context must
// synchronize externally.
package reg

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hwio/regbit/bits"
	"github.com/hwio/regbit/mmio"
)

var (
	ErrZeroWidth = errors.New("reg: zero-width field")
	ErrRange     = errors.New("reg: field exceeds register width")
)

// Option configures a register declaration.
type Option[T mmio.Uint] func(*Reg[T])

// Reset declares the register's reset value.  It defaults to zero.
func Reset[T mmio.Uint](v T) Option[T] {
	return func(r *Reg[T]) { r.reset = v }
}

// Shadow enables a shadow value for the register: a software copy of the
// last written word, initialized to the reset value.  Writes to fields of a
// shadow register update the copy first and then store the whole copy to
// hardware, which makes partial writes to write-only hardware safe.  The
// copy is owned by the register handle and follows the same single-writer
// discipline as the hardware location itself.
func Shadow[T mmio.Uint]() Option[T] {
	return func(r *Reg[T]) { r.shadow = new(T) }
}

// Reg is a register of representation T.  Its zero value is not usable;
// declare registers with New, Must, In or MustIn.
type Reg[T mmio.Uint] struct {
	mem    *mmio.R[T]
	reset  T
	shadow *T
}

// New declares a register of representation T at the absolute address addr.
// The address must be a multiple of T's byte size.
func New[T mmio.Uint](addr uintptr, opts ...Option[T]) (*Reg[T], error) {
	var v T
	d, err := mmio.Map(addr, unsafe.Sizeof(v))
	if err != nil {
		return nil, err
	}
	return newReg[T](d, 0, opts...)
}

// Must is like New but panics on a declaration error.
func Must[T mmio.Uint](addr uintptr, opts ...Option[T]) *Reg[T] {
	r, err := New[T](addr, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func newReg[T mmio.Uint](d *mmio.Device, byteOffset uintptr, opts ...Option[T]) (*Reg[T], error) {
	mem, err := mmio.At[T](d, byteOffset)
	if err != nil {
		return nil, err
	}
	r := &Reg[T]{mem: mem}
	for _, opt := range opts {
		opt(r)
	}
	if r.shadow != nil {
		*r.shadow = r.reset
	}
	return r, nil
}

// Mem returns the register's cell for raw whole-register access.
func (r *Reg[T]) Mem() *mmio.R[T] {
	return r.mem
}

// Addr returns the register's address.
func (r *Reg[T]) Addr() uintptr {
	return r.mem.Addr()
}

// Size returns the register's width in bits.
func (r *Reg[T]) Size() uint {
	return bits.Width[T]()
}

// Reset returns the declared reset value.
func (r *Reg[T]) Reset() T {
	return r.reset
}

// UsesShadow reports whether the register was declared with Shadow.
func (r *Reg[T]) UsesShadow() bool {
	return r.shadow != nil
}

// ShadowValue returns the current shadow value.  It panics if the register
// was not declared with Shadow.
func (r *Reg[T]) ShadowValue() T {
	if r.shadow == nil {
		panic(fmt.Sprintf("reg: register %#x has no shadow value", r.Addr()))
	}
	return *r.shadow
}

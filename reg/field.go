package reg

import (
	"fmt"

	"github.com/hwio/regbit/bits"
	"github.com/hwio/regbit/debug"
	"github.com/hwio/regbit/mmio"
)

// field is the common core of the three capability types.  It carries the
// derived mask and the trivial flag, both computed once at declaration.
type field[T mmio.Uint] struct {
	reg     *Reg[T]
	mask    T
	offset  uint
	width   uint
	trivial bool // mask covers the register and offset is zero
}

func newField[T mmio.Uint](r *Reg[T], width, offset uint) (field[T], error) {
	if width == 0 {
		return field[T]{}, fmt.Errorf("reg: field at bit %d: %w", offset, ErrZeroWidth)
	}
	if offset+width > bits.Width[T]() {
		return field[T]{}, fmt.Errorf("reg: field [%d,%d) in %d bit register: %w",
			offset, offset+width, bits.Width[T](), ErrRange)
	}
	mask := bits.ShiftedMask[T](width, offset)
	return field[T]{
		reg:     r,
		mask:    mask,
		offset:  offset,
		width:   width,
		trivial: mask == ^T(0) && offset == 0,
	}, nil
}

// Mask returns the field's mask in register bit positions.
func (f field[T]) Mask() T { return f.mask }

// Offset returns the field's bit offset within the register.
func (f field[T]) Offset() uint { return f.offset }

// Width returns the field's width in bits.
func (f field[T]) Width() uint { return f.width }

// max is the largest value the field can hold.
func (f field[T]) max() T { return f.mask >> f.offset }

func (f field[T]) read() T {
	if f.trivial {
		return f.reg.mem.Load()
	}
	return f.reg.mem.LoadBits(f.mask) >> f.offset
}

// write with read-write semantics: bits outside the field are preserved.
func (f field[T]) write(v T) {
	if s := f.reg.shadow; s != nil {
		*s = *s&^f.mask | v<<f.offset&f.mask
		f.reg.mem.Store(*s)
		return
	}
	if f.trivial {
		f.reg.mem.Store(v)
		return
	}
	f.reg.mem.StoreBits(f.mask, v<<f.offset)
}

// writeWhole with write-only semantics: the hardware cannot be read back, so
// the store covers the whole register and clears all bits outside the field.
func (f field[T]) writeWhole(v T) {
	if f.reg.shadow != nil {
		f.write(v)
		return
	}
	f.reg.mem.Store(v << f.offset & f.mask)
}

func (f field[T]) checkOverflow(v T) {
	if !bits.Fits(v, f.max()) {
		panic(fmt.Sprintf("reg: value %#x overflows %d bit field at bit %d",
			v, f.width, f.offset))
	}
}

// RO is a read-only field.
type RO[T mmio.Uint] struct {
	field[T]
}

// NewRO declares a read-only field of the given width at the given bit
// offset in r.
func NewRO[T mmio.Uint](r *Reg[T], width, offset uint) (RO[T], error) {
	f, err := newField(r, width, offset)
	return RO[T]{f}, err
}

// MustRO is like NewRO but panics on a declaration error.
func MustRO[T mmio.Uint](r *Reg[T], width, offset uint) RO[T] {
	f, err := NewRO(r, width, offset)
	if err != nil {
		panic(err)
	}
	return f
}

// Read returns the field's value, right-aligned.
func (f RO[T]) Read() T { return f.read() }

// IsSet reports whether every bit of the field is one.
func (f RO[T]) IsSet() bool { return f.read() == f.max() }

// IsClear reports whether every bit of the field is zero.
func (f RO[T]) IsClear() bool { return f.read() == 0 }

// RW is a read-write field.
type RW[T mmio.Uint] struct {
	field[T]
}

// NewRW declares a read-write field of the given width at the given bit
// offset in r.
func NewRW[T mmio.Uint](r *Reg[T], width, offset uint) (RW[T], error) {
	f, err := newField(r, width, offset)
	return RW[T]{f}, err
}

// MustRW is like NewRW but panics on a declaration error.
func MustRW[T mmio.Uint](r *Reg[T], width, offset uint) RW[T] {
	f, err := NewRW(r, width, offset)
	if err != nil {
		panic(err)
	}
	return f
}

// Read returns the field's value, right-aligned.
func (f RW[T]) Read() T { return f.read() }

// IsSet reports whether every bit of the field is one.
func (f RW[T]) IsSet() bool { return f.read() == f.max() }

// IsClear reports whether every bit of the field is zero.
func (f RW[T]) IsClear() bool { return f.read() == 0 }

// Write stores v into the field, preserving the rest of the register.  A
// value wider than the field is silently truncated to the field's mask,
// matching raw hardware semantics; use CheckedWrite to catch that instead.
// Builds with the debug tag panic on truncation.
func (f RW[T]) Write(v T) {
	if debug.Enabled {
		f.checkOverflow(v)
	}
	f.write(v)
}

// CheckedWrite is Write for values that are expected to fit.  It panics
// before touching hardware if v overflows the field, which makes overflow a
// declaration-site failure for constant values.
func (f RW[T]) CheckedWrite(v T) {
	f.checkOverflow(v)
	f.write(v)
}

// Set sets all bits of the field.
func (f RW[T]) Set() { f.reg.mem.SetBits(f.mask) }

// Clear clears all bits of the field.
func (f RW[T]) Clear() { f.reg.mem.ClearBits(f.mask) }

// Toggle inverts all bits of the field.
func (f RW[T]) Toggle() { f.reg.mem.ToggleBits(f.mask) }

// WO is a write-only field.  Since write-only hardware cannot be read back,
// a write to a WO field of a register without a shadow value stores the
// whole register and clears every bit outside the field.  Declare the
// register with Shadow to make such writes preserve the other fields.
type WO[T mmio.Uint] struct {
	field[T]
}

// NewWO declares a write-only field of the given width at the given bit
// offset in r.
func NewWO[T mmio.Uint](r *Reg[T], width, offset uint) (WO[T], error) {
	f, err := newField(r, width, offset)
	return WO[T]{f}, err
}

// MustWO is like NewWO but panics on a declaration error.
func MustWO[T mmio.Uint](r *Reg[T], width, offset uint) WO[T] {
	f, err := NewWO(r, width, offset)
	if err != nil {
		panic(err)
	}
	return f
}

// Write stores v into the field.  See the WO documentation for the
// whole-register clobber semantics on registers without a shadow value.
// Builds with the debug tag panic on truncation.
func (f WO[T]) Write(v T) {
	if debug.Enabled {
		f.checkOverflow(v)
	}
	f.writeWhole(v)
}

// CheckedWrite is Write but panics before touching hardware if v overflows
// the field.
func (f WO[T]) CheckedWrite(v T) {
	f.checkOverflow(v)
	f.writeWhole(v)
}

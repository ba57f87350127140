package reg

import (
	"github.com/hwio/regbit/bits"
	"github.com/hwio/regbit/mmio"
)

// Pack is a group of registers sharing one contiguous memory window, e.g. a
// peripheral's register file.  Registers are declared against the pack at
// bit offsets from its base with In and MustIn.
type Pack struct {
	dev *mmio.Device
}

// NewPack declares a register pack of byteSize bytes at the absolute
// address base.
func NewPack(base, byteSize uintptr) (*Pack, error) {
	dev, err := mmio.Map(base, byteSize)
	if err != nil {
		return nil, err
	}
	return &Pack{dev: dev}, nil
}

// MustPack is like NewPack but panics on a declaration error.
func MustPack(base, byteSize uintptr) *Pack {
	p, err := NewPack(base, byteSize)
	if err != nil {
		panic(err)
	}
	return p
}

// SimPack declares a pack over allocated memory instead of hardware.  It
// backs register map tests and host-side peripheral emulation.
func SimPack(byteSize int) *Pack {
	return &Pack{dev: mmio.Alloc(byteSize)}
}

// PackAt declares a pack over an existing memory window, e.g. one obtained
// from mmio.MapDevMem.
func PackAt(dev *mmio.Device) *Pack {
	return &Pack{dev: dev}
}

// Base returns the pack's base address.
func (p *Pack) Base() uintptr { return p.dev.Base() }

// Size returns the pack's size in bytes.
func (p *Pack) Size() uintptr { return p.dev.Size() }

// Device returns the pack's memory window.
func (p *Pack) Device() *mmio.Device { return p.dev }

// In declares a register of representation T at bitOffset from the pack's
// base.  The register must fit inside the pack and its effective address
// base+bitOffset/8 must be a multiple of T's byte size.
func In[T mmio.Uint](p *Pack, bitOffset uint, opts ...Option[T]) (*Reg[T], error) {
	return newReg[T](p.dev, uintptr(bitOffset/8), opts...)
}

// MustIn is like In but panics on a declaration error.
func MustIn[T mmio.Uint](p *Pack, bitOffset uint, opts ...Option[T]) *Reg[T] {
	r, err := In[T](p, bitOffset, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// ArrayIn declares n registers of representation T at consecutive offsets
// starting at firstBitOffset.  Index order equals offset order, which makes
// repetitive register files (N identical channel registers) an ordinary
// indexed range:
//
//	chans, _ := reg.ArrayIn[uint32](p, 0, 8)
//	for i, ch := range chans { ... }
func ArrayIn[T mmio.Uint](p *Pack, firstBitOffset uint, n int, opts ...Option[T]) ([]*Reg[T], error) {
	regs := make([]*Reg[T], n)
	stride := bits.Width[T]()
	for i := range regs {
		r, err := In[T](p, firstBitOffset+uint(i)*stride, opts...)
		if err != nil {
			return nil, err
		}
		regs[i] = r
	}
	return regs, nil
}

// MustArrayIn is like ArrayIn but panics on a declaration error.
func MustArrayIn[T mmio.Uint](p *Pack, firstBitOffset uint, n int, opts ...Option[T]) []*Reg[T] {
	regs, err := ArrayIn[T](p, firstBitOffset, n, opts...)
	if err != nil {
		panic(err)
	}
	return regs
}

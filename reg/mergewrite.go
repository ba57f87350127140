package reg

import (
	"fmt"

	"github.com/hwio/regbit/mmio"
)

// MergeWrite accumulates writes to several fields of one register and
// applies them to hardware with a single store.  A builder is opened with
// Reg.MergeWrite, extended with With and finished with Commit:
//
//	ctrl.MergeWrite(mode, 3).With(enable, 1).Commit()
//
// Commit is mandatory; an abandoned builder writes nothing.  A builder is
// one-shot: any use after Commit panics.  Cross-register merges and merges
// on shadow registers are programmer errors and panic at the call site.
type MergeWrite[T mmio.Uint] struct {
	reg       *Reg[T]
	mask      T
	val       T
	committed bool
}

// MergeWrite opens a merge-write builder on r, seeded with a write of v to
// field f.
//
// Merge writes are unavailable on shadow registers: the shadow exists
// because the hardware cannot be read back, while a partial merge commit may
// need a true read-modify-write.
func (r *Reg[T]) MergeWrite(f RW[T], v T) *MergeWrite[T] {
	if r.shadow != nil {
		panic(fmt.Sprintf("reg: merge write on shadow register %#x", r.Addr()))
	}
	m := &MergeWrite[T]{reg: r}
	return m.With(f, v)
}

// With accumulates a write of v to field f and returns the builder for
// chaining.  f must be a field of the builder's register.  Writing the same
// field twice keeps the last value.
func (m *MergeWrite[T]) With(f RW[T], v T) *MergeWrite[T] {
	if m.committed {
		panic("reg: merge write used after commit")
	}
	if f.reg != m.reg {
		panic(fmt.Sprintf("reg: merge write on register %#x with field of register %#x",
			m.reg.Addr(), f.reg.Addr()))
	}
	m.val = m.val&^f.mask | v<<f.offset&f.mask
	m.mask |= f.mask
	return m
}

// Commit performs the single store.  If the accumulated fields cover the
// whole register the old value is not read back; otherwise one
// read-modify-write preserves the untouched bits.
func (m *MergeWrite[T]) Commit() {
	if m.committed {
		panic("reg: merge write committed twice")
	}
	m.committed = true
	if m.mask == ^T(0) {
		m.reg.mem.Store(m.val)
		return
	}
	m.reg.mem.StoreBits(m.mask, m.val)
}

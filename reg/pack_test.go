package reg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwio/regbit/mmio"
	"github.com/hwio/regbit/reg"
	"github.com/hwio/regbit/sim"
)

func TestPackedRegisterOffsets(t *testing.T) {
	mem := sim.New(16)
	p := mem.Pack()

	r0 := reg.MustIn[uint32](p, 0)
	r1 := reg.MustIn[uint32](p, 32)
	r2 := reg.MustIn[uint16](p, 96)

	assert.Equal(t, p.Base(), r0.Addr())
	assert.Equal(t, p.Base()+4, r1.Addr())
	assert.Equal(t, p.Base()+12, r2.Addr())

	r1.Mem().Store(0x0102_0304)
	assert.Equal(t, []byte{4, 3, 2, 1}, mem.Bytes()[4:8], "expected little-endian host")
}

func TestPackBounds(t *testing.T) {
	mem := sim.New(8)
	p := mem.Pack()

	_, err := reg.In[uint32](p, 32)
	require.NoError(t, err)
	_, err = reg.In[uint32](p, 40)
	assert.ErrorIs(t, err, mmio.ErrBounds)
	_, err = reg.In[uint64](p, 64)
	assert.ErrorIs(t, err, mmio.ErrBounds)
	assert.Panics(t, func() { reg.MustIn[uint8](p, 64) })
}

func TestPackedAlignment(t *testing.T) {
	mem := sim.New(16)
	p := mem.Pack()

	_, err := reg.In[uint32](p, 16) // effective address base+2
	assert.ErrorIs(t, err, mmio.ErrMisaligned)
	_, err = reg.In[uint16](p, 24)
	assert.ErrorIs(t, err, mmio.ErrMisaligned)
	_, err = reg.In[uint16](p, 16)
	require.NoError(t, err)
	_, err = reg.In[uint8](p, 24)
	require.NoError(t, err)
}

func TestArrayInIndexOrder(t *testing.T) {
	mem := sim.New(4)
	p := mem.Pack()

	chans, err := reg.ArrayIn[uint8](p, 0, 4)
	require.NoError(t, err)
	require.Len(t, chans, 4)

	visited := 0
	for i, ch := range chans {
		assert.Equal(t, p.Base()+uintptr(i), ch.Addr(), "index %d", i)
		ch.Mem().Store(uint8(0x10 + i))
		visited++
	}
	assert.Equal(t, 4, visited)
	assert.Equal(t, []byte{0x10, 0x11, 0x12, 0x13}, mem.Bytes())
}

func TestArrayInBounds(t *testing.T) {
	mem := sim.New(8)
	p := mem.Pack()

	_, err := reg.ArrayIn[uint16](p, 0, 4)
	require.NoError(t, err)
	_, err = reg.ArrayIn[uint16](p, 0, 5)
	assert.ErrorIs(t, err, mmio.ErrBounds)
}

func TestPackAtDevMemWindow(t *testing.T) {
	// PackAt accepts any window, e.g. one from mmio.MapDevMem.  Use an
	// allocated one here.
	d := mmio.Alloc(4)
	p := reg.PackAt(d)
	assert.Equal(t, d.Base(), p.Base())
	assert.EqualValues(t, 4, p.Size())

	r := reg.MustIn[uint32](p, 0)
	r.Mem().Store(1)
	assert.Equal(t, uint32(1), r.Mem().Load())
}

func TestNewPackZeroSize(t *testing.T) {
	_, err := reg.NewPack(0x0440_0000, 0)
	assert.ErrorIs(t, err, mmio.ErrZeroSize)
}

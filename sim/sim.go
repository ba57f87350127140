// Package sim provides simulated register windows for testing register maps
// and the drivers built on them without hardware.
package sim

import (
	"unsafe"

	"github.com/sigurn/crc8"

	"github.com/hwio/regbit/mmio"
	"github.com/hwio/regbit/reg"
)

// Mem is a register window backed by allocated memory.  It behaves exactly
// like a hardware window, but its contents can be inspected and preset.
type Mem struct {
	dev *mmio.Device
}

// New returns a simulated window of byteSize bytes, zero-filled.
func New(byteSize int) *Mem {
	return &Mem{dev: mmio.Alloc(byteSize)}
}

// Device returns the window for use with mmio.At.
func (m *Mem) Device() *mmio.Device { return m.dev }

// Pack returns a register pack over the window.
func (m *Mem) Pack() *reg.Pack { return reg.PackAt(m.dev) }

func (m *Mem) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(m.dev.Base())), m.dev.Size())
}

// Bytes returns a copy of the window contents.
func (m *Mem) Bytes() []byte {
	return append([]byte(nil), m.bytes()...)
}

// Fill sets every byte of the window to b, e.g. to verify that an operation
// is independent of the previous register contents.
func (m *Mem) Fill(b byte) {
	s := m.bytes()
	for i := range s {
		s[i] = b
	}
}

var fpTable = crc8.MakeTable(crc8.CRC8)

// Fingerprint returns a CRC-8 of the window contents.  Comparing
// fingerprints between test steps is a cheap way to detect stray writes
// outside the registers under test.
func (m *Mem) Fingerprint() uint8 {
	return crc8.Checksum(m.bytes(), fpTable)
}

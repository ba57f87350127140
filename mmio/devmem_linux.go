//go:build linux

package mmio

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MapDevMem maps size bytes of physical memory at addr through /dev/mem and
// returns a window over it, together with a function that unmaps it.  This
// is the window constructor for embedded Linux hosts, where peripherals are
// not visible in the process address space directly.
//
// Requires a kernel without CONFIG_STRICT_DEVMEM restrictions on the
// requested range and the privileges to open /dev/mem.
func MapDevMem(addr, size uintptr) (*Device, func() error, error) {
	if size == 0 {
		return nil, nil, fmt.Errorf("mmio: map %#x: %w", addr, ErrZeroSize)
	}

	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("mmio: %w", err)
	}
	defer f.Close()

	// Mmap offsets must be page-aligned, the window itself need not be.
	page := uintptr(unix.Getpagesize())
	first := addr &^ (page - 1)
	mem, err := unix.Mmap(int(f.Fd()), int64(first), int(addr-first+size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmio: mmap %#x: %w", first, err)
	}

	d := &Device{
		ptr:  unsafe.Pointer(&mem[addr-first]),
		size: size,
		mem:  mem,
	}
	return d, func() error { return unix.Munmap(mem) }, nil
}

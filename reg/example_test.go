package reg_test

import (
	"fmt"

	"github.com/hwio/regbit/reg"
	"github.com/hwio/regbit/sim"
)

func Example() {
	// A UART-like peripheral.  On hardware the pack would be declared at
	// the peripheral's base address: reg.MustPack(0x1000_0000, 8).
	uart := sim.New(8)
	p := uart.Pack()

	ctrl := reg.MustIn[uint32](p, 0)
	enable := reg.MustRW(ctrl, 1, 0)
	parity := reg.MustRW(ctrl, 2, 1)
	busy := reg.MustRO(ctrl, 1, 31)

	ctrl.MergeWrite(enable, 1).With(parity, 0b10).Commit()

	fmt.Println(enable.IsSet(), parity.Read(), busy.IsClear())
	// Output: true 2 true
}

func ExampleShadow() {
	// A write-only prescaler register: reads do not return the written
	// value, so a shadow value keeps partial writes safe.
	mem := sim.New(4)
	clk := reg.MustIn[uint32](mem.Pack(), 0, reg.Shadow[uint32]())
	div := reg.MustWO(clk, 8, 0)
	src := reg.MustWO(clk, 2, 8)

	div.Write(25)
	src.Write(1)

	fmt.Printf("%#x\n", clk.ShadowValue())
	// Output: 0x119
}

func ExampleArrayIn() {
	// Four identical channel registers, iterated by index.
	dma := sim.New(16)
	chans := reg.MustArrayIn[uint32](dma.Pack(), 0, 4)

	for i, ch := range chans {
		reg.MustRW(ch, 8, 0).Write(uint32(i))
	}

	fmt.Println(len(chans))
	// Output: 4
}

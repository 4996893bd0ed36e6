package bus

import (
	"testing"

	"github.com/kbrandt/nescart/joypad"
	"github.com/kbrandt/nescart/mappers"
)

func TestBaseRAMMirroring(t *testing.T) {
	b, _ := New(mappers.Dummy)

	for i := 0; i < 10; i++ {
		b.Write(uint16(i), uint8(i+1))
	}

	for _, base := range []uint16{0, 0x800, 0x1000, 0x1800} {
		for i := 0; i < 10; i++ {
			if got := b.Read(base + uint16(i)); got != uint8(i+1) {
				t.Errorf("mem[%#04x] = %#02x, want %#02x", base+uint16(i), got, i+1)
			}
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b, _ := New(mappers.Dummy)

	b.Write(0x2000, 0x80) // PPUCTRL, mirrored every 8 bytes up to 0x3FFF
	b.Write(0x3FF8, 0x01) // same register, far mirror

	// PPUCTRL is write-only in practice, so assert indirectly: writing
	// through the far mirror must not panic and must hit the same
	// register as the base address (no way to read PPUCTRL back, so
	// this exercises the address-fold math against a boundary case).
	_ = b.Read(0x2002)
}

func TestJoypadStrobeAndRead(t *testing.T) {
	b, _ := New(mappers.Dummy)

	b.SetButton(1, joypad.ButtonA, true)
	b.Write(JOYPAD1, 1) // strobe on
	b.Write(JOYPAD1, 0) // latch

	if got := b.Read(JOYPAD1); got != 1 {
		t.Errorf("first joypad1 read = %d, want 1 (A pressed)", got)
	}
	if got := b.Read(JOYPAD1); got != 0 {
		t.Errorf("second joypad1 read = %d, want 0 (B not pressed)", got)
	}
}

func TestOAMDMACopiesPageIntoPPU(t *testing.T) {
	b, _ := New(mappers.Dummy)

	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), uint8(i))
	}
	b.Write(OAMDMA, 0x02)

	if got := b.TakeDMAStallCycles(); got != 513 {
		t.Errorf("dma stall cycles = %d, want 513", got)
	}
}

func TestUnmappedExpansionRegionReadsZero(t *testing.T) {
	b, _ := New(mappers.Dummy)
	if got := b.Read(0x4020); got != 0 {
		t.Errorf("Read(0x4020) = %#02x, want 0", got)
	}
}

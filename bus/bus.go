// Package bus implements the NES CPU memory map: internal RAM,
// mirrored PPU registers, joypad ports, and the cartridge mapper, all
// flattened into the 6502's 16-bit address space.
package bus

import (
	"github.com/kbrandt/nescart/cpu"
	"github.com/kbrandt/nescart/joypad"
	"github.com/kbrandt/nescart/mappers"
	"github.com/kbrandt/nescart/ppu"
	"github.com/kbrandt/nescart/screen"
)

const (
	MAX_NES_BASE_RAM     = 0x1FFF
	MAX_PPU_REG_MIRRORED = 0x3FFF
	MAX_IO_REG           = 0x4020
	MAX_SRAM             = 0x5FFF
	MAX_ADDRESS          = 0xFFFF

	JOYPAD1 = 0x4016
	JOYPAD2 = 0x4017
	OAMDMA  = 0x4014
)

// Bus wires the CPU, PPU, mapper and joypads together. It satisfies
// both cpu.Bus and ppu.Bus so those packages never need to import one
// another or this package.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	mapper mappers.Mapper

	joypad1 *joypad.Joypad
	joypad2 *joypad.Joypad

	// OAMDMA stalls the CPU for 513 or 514 cycles on real hardware
	// (514 if the stall begins on an odd CPU cycle). The core counts
	// this as extra Step cycles rather than modeling the half-cycle
	// alignment, keeping the cycle-interleaved stepping model simple.
	dmaStallCycles int

	ram [bus_ram_size]uint8
}

const bus_ram_size = 0x0800

// New builds a fully wired Bus for the given cartridge mapper. The
// screen it returns is where the PPU deposits completed frames.
func New(m mappers.Mapper) (*Bus, *screen.Screen) {
	b := &Bus{mapper: m, joypad1: joypad.New(), joypad2: joypad.New()}
	scr := screen.New()

	b.CPU = cpu.New()
	b.PPU = ppu.New(b, scr)
	b.PPU.SetMirrorMode(m.MirroringMode())

	return b, scr
}

// Reset loads the CPU's PC from the reset vector.
func (b *Bus) Reset() {
	b.CPU.Reset(b)
}

// TriggerNMI satisfies ppu.Bus: the PPU calls this when it enters
// vblank with NMI generation enabled.
func (b *Bus) TriggerNMI() {
	b.CPU.TriggerNMI()
}

// ChrRead/ChrWrite satisfy ppu.Bus, delegating pattern-table access to
// the cartridge mapper.
func (b *Bus) ChrRead(addr uint16) uint8       { return b.mapper.ChrRead(addr) }
func (b *Bus) ChrWrite(addr uint16, val uint8) { b.mapper.ChrWrite(addr, val) }

// TakeDMAStallCycles drains and returns any CPU cycles owed from a
// prior OAMDMA write, for the core's step loop to fold into its PPU
// tick accounting.
func (b *Bus) TakeDMAStallCycles() int {
	c := b.dmaStallCycles
	b.dmaStallCycles = 0
	return c
}

// Read satisfies cpu.Bus.
// https://www.nesdev.org/wiki/CPU_memory_map
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= MAX_NES_BASE_RAM:
		return b.ram[addr&0x07FF]
	case addr <= MAX_PPU_REG_MIRRORED:
		return b.PPU.ReadReg(0x2000 + addr&0x0007)
	case addr == JOYPAD1:
		return b.joypad1.Read()
	case addr == JOYPAD2:
		return b.joypad2.Read()
	case addr < MAX_IO_REG:
		// APU registers and the remaining 0x4000-0x4017 I/O range: no
		// audio core exists yet, so reads
		// float to 0 rather than panicking.
		return 0
	case addr <= MAX_SRAM:
		// 0x4020-0x5FFF is unmapped on every board this repo supports.
		// Reads return 0; nothing is logged.
		return 0
	default:
		return b.mapper.PrgRead(addr)
	}
}

// Write satisfies cpu.Bus.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= MAX_NES_BASE_RAM:
		b.ram[addr&0x07FF] = val
	case addr <= MAX_PPU_REG_MIRRORED:
		b.PPU.WriteReg(0x2000+addr&0x0007, val)
	case addr == OAMDMA:
		b.runOAMDMA(val)
	case addr == JOYPAD1:
		// Writing JOYPAD1 strobes both controller shift registers;
		// JOYPAD2 is read-only from the CPU's perspective.
		b.joypad1.Write(val)
		b.joypad2.Write(val)
	case addr < MAX_IO_REG:
		// Remaining APU registers: accepted, not emulated.
	case addr <= MAX_SRAM:
		// 0x4020-0x5FFF is unmapped on every board this repo supports.
		// Writes are dropped; nothing is logged.
	default:
		b.mapper.PrgWrite(addr, val)
		// Mappers with runtime-selectable mirroring (AxROM, MMC1, MMC3)
		// change it through PRG register writes; keep the PPU's
		// nametable addressing in sync rather than only reading it once
		// at startup.
		b.PPU.SetMirrorMode(b.mapper.MirroringMode())
	}
}

func (b *Bus) runOAMDMA(page uint8) {
	base := uint16(page) << 8
	var buf [256]uint8
	for i := 0; i < 256; i++ {
		buf[i] = b.Read(base + uint16(i))
	}
	b.PPU.OAMDMA(buf[:])

	// Real hardware costs 513 cycles, or 514 if the stall starts on an
	// odd CPU cycle. The core doesn't track cycle parity at the bus
	// level, so this always charges the even-aligned cost.
	b.dmaStallCycles += 513
}

// SetButton forwards a host input event to one of the two joypad
// ports. port is 1 or 2; any other value is ignored.
func (b *Bus) SetButton(port int, button uint8, down bool) {
	switch port {
	case 1:
		b.joypad1.SetButton(button, down)
	case 2:
		b.joypad2.SetButton(button, down)
	}
}

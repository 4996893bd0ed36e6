package mappers

import "github.com/kbrandt/nescart/cartridge"

func init() {
	RegisterMapper(1, &mapper1{
		baseMapper:     newBaseMapper(1, "MMC1"),
		shiftRegister:  0b10000,
		prgRomBankMode: 3,
	})
}

// mapper1 implements MMC1: a single 5-bit shift register, written one
// bit at a time (LSB first) from the CPU, that latches into one of
// four internal registers every fifth write. Writing with bit 7 set
// resets the shift register and forces 16KB-fixed-to-last PRG mode.
type mapper1 struct {
	*baseMapper

	prgRAM [0x2000]uint8

	shiftRegister uint8

	mirroring      uint8
	prgRomBankMode uint8 // 0,1: 32KB switchable; 2: fixed low/switch high; 3: switch low/fixed high
	chrRomBankMode uint8 // 0: single 8KB CHR bank; 1: two independent 4KB CHR banks

	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgRAMEnable bool
}

func (m *mapper1) MirroringMode() uint8 {
	switch m.mirroring {
	case 2:
		return cartridge.MIRROR_VERTICAL
	case 3:
		return cartridge.MIRROR_HORIZONTAL
	default:
		// 0 and 1 select one-screen mirroring; the PPU doesn't
		// distinguish lower/upper for MMC1 the way AxROM needs to,
		// so both collapse to the lower single-screen bank.
		return MIRROR_SINGLE_LOWER
	}
}

func (m *mapper1) PrgRead(addr uint16) uint8 {
	if addr < 0x8000 {
		if !m.prgRAMEnable {
			return 0
		}
		return m.prgRAM[addr-0x6000]
	}

	switch m.prgRomBankMode {
	case 0, 1:
		return m.rom.PrgRead(uint32(addr-0x8000) + 0x8000*uint32(m.prgBank&0b1110))
	case 2:
		if addr < 0xC000 {
			return m.rom.PrgRead(uint32(addr - 0x8000))
		}
		return m.rom.PrgRead(uint32(addr-0xC000) + 0x4000*uint32(m.prgBank))
	default: // 3
		if addr < 0xC000 {
			return m.rom.PrgRead(uint32(addr-0x8000) + 0x4000*uint32(m.prgBank))
		}
		lastBank := uint32(m.rom.PrgSize()/0x4000-1) * 0x4000
		return m.rom.PrgRead(uint32(addr-0xC000) + lastBank)
	}
}

func (m *mapper1) PrgWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		if m.prgRAMEnable {
			m.prgRAM[addr-0x6000] = val
		}
		return
	}

	if val&0x80 != 0 {
		m.shiftRegister = 0b10000
		m.prgRomBankMode = 3
		return
	}

	complete := m.shiftRegister&1 != 0
	m.shiftRegister = ((val & 1) << 4) | (m.shiftRegister >> 1)
	if !complete {
		return
	}

	value := m.shiftRegister
	switch {
	case addr <= 0x9FFF:
		m.mirroring = value & 0b11
		m.prgRomBankMode = (value >> 2) & 0b11
		m.chrRomBankMode = value >> 4
	case addr <= 0xBFFF:
		m.chrBank0 = value
	case addr <= 0xDFFF:
		m.chrBank1 = value
	default:
		m.prgBank = value & 0b1111
		m.prgRAMEnable = (value >> 4) == 0
	}
	m.shiftRegister = 0b10000
}

func (m *mapper1) ChrRead(addr uint16) uint8 {
	return m.chrRead(m.chrOffset(addr))
}

func (m *mapper1) ChrWrite(addr uint16, val uint8) {
	m.chrWrite(m.chrOffset(addr), val)
}

func (m *mapper1) chrOffset(addr uint16) uint32 {
	if m.chrRomBankMode == 0 {
		return uint32(addr) + 0x1000*uint32(m.chrBank0&0b11110)
	}
	if addr < 0x1000 {
		return uint32(addr) + 0x1000*uint32(m.chrBank0)
	}
	return uint32(addr-0x1000) + 0x1000*uint32(m.chrBank1)
}

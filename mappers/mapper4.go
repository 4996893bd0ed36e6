package mappers

import "github.com/kbrandt/nescart/cartridge"

func init() {
	RegisterMapper(4, &mapper4{baseMapper: newBaseMapper(4, "MMC3")})
}

// mapper4 implements MMC3: a bank-select register chooses one of eight
// targets (R0-R7), and the following write loads that target's bank
// number. The PRG mode bit swaps which of the two 8 KiB slots
// (0x8000 or 0xC000) is switchable versus fixed to the second-last
// bank; 0xE000-0xFFFF is always fixed to the last bank. The CHR mode
// bit swaps whether the 2 KiB banks sit at the low or high half of
// pattern table space.
//
// MMC3's scanline-IRQ counter and dedicated mirroring control register
// writes are accepted without error, but this mapper never raises an
// interrupt from the counter — a deliberately stubbed behavior.
type mapper4 struct {
	*baseMapper

	prgRAM             [0x2000]uint8
	prgRAMEnable       bool
	prgRAMWriteProtect bool

	bankSelect uint8
	prgMode    uint8
	chrMode    uint8
	registers  [8]uint8

	mirroring uint8

	irqLatch   uint8
	irqCounter uint8
	irqEnabled bool
	irqReload  bool
}

func (m *mapper4) MirroringMode() uint8 {
	if m.mirroring&1 != 0 {
		return cartridge.MIRROR_HORIZONTAL
	}
	return cartridge.MIRROR_VERTICAL
}

func (m *mapper4) prgBanks() uint32 {
	return uint32(m.rom.PrgSize() / 0x2000)
}

func (m *mapper4) PrgRead(addr uint16) uint8 {
	if addr < 0x8000 {
		if m.prgRAMEnable {
			return m.prgRAM[addr-0x6000]
		}
		return 0
	}

	var bank uint32
	switch {
	case addr < 0xA000:
		if m.prgMode == 0 {
			bank = uint32(m.registers[6])
		} else {
			bank = m.prgBanks() - 2
		}
		return m.rom.PrgRead(bank*0x2000 + uint32(addr-0x8000))
	case addr < 0xC000:
		bank = uint32(m.registers[7])
		return m.rom.PrgRead(bank*0x2000 + uint32(addr-0xA000))
	case addr < 0xE000:
		if m.prgMode == 0 {
			bank = m.prgBanks() - 2
		} else {
			bank = uint32(m.registers[6])
		}
		return m.rom.PrgRead(bank*0x2000 + uint32(addr-0xC000))
	default:
		bank = m.prgBanks() - 1
		return m.rom.PrgRead(bank*0x2000 + uint32(addr-0xE000))
	}
}

func (m *mapper4) PrgWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		if m.prgRAMEnable && !m.prgRAMWriteProtect {
			m.prgRAM[addr-0x6000] = val
		}
		return
	}

	even := addr&1 == 0
	switch {
	case addr < 0xA000:
		if even {
			m.bankSelect = val & 0x07
			m.prgMode = (val >> 6) & 1
			m.chrMode = (val >> 7) & 1
		} else {
			m.registers[m.bankSelect] = val
		}
	case addr < 0xC000:
		if even {
			m.mirroring = val & 1
		} else {
			m.prgRAMWriteProtect = val&0x40 != 0
			m.prgRAMEnable = val&0x80 != 0
		}
	case addr < 0xE000:
		if even {
			m.irqLatch = val
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}
		warnOnceUnimplemented("MMC3", "scanline IRQ")
	default:
		m.irqEnabled = !even
	}
}

func (m *mapper4) ChrRead(addr uint16) uint8 {
	return m.chrRead(m.chrOffset(addr))
}

func (m *mapper4) ChrWrite(addr uint16, val uint8) {
	m.chrWrite(m.chrOffset(addr), val)
}

// chrOffset translates a PPU pattern-table address into a byte offset
// against the cartridge's full CHR space, honoring chrMode's inversion
// of the 2 KiB/1 KiB bank layout.
func (m *mapper4) chrOffset(addr uint16) uint32 {
	lowIsTwoK := m.chrMode == 0
	if !lowIsTwoK {
		addr ^= 0x1000
	}

	switch {
	case addr < 0x0800:
		return uint32(m.registers[0]&0xFE)*0x400 + uint32(addr)
	case addr < 0x1000:
		return uint32(m.registers[1]&0xFE)*0x400 + uint32(addr-0x0800)
	case addr < 0x1400:
		return uint32(m.registers[2])*0x400 + uint32(addr-0x1000)
	case addr < 0x1800:
		return uint32(m.registers[3])*0x400 + uint32(addr-0x1400)
	case addr < 0x1C00:
		return uint32(m.registers[4])*0x400 + uint32(addr-0x1800)
	default:
		return uint32(m.registers[5])*0x400 + uint32(addr-0x1C00)
	}
}

// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files.
package mappers

import (
	"fmt"

	"github.com/kbrandt/nescart/cartridge"
	"github.com/kbrandt/nescart/internal/warnonce"
)

// A global registry of mappers, keyed by mapper id.
var allMappers = map[uint16]Mapper{}

func RegisterMapper(id uint16, m Mapper) {
	if om, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("Can't re-register mapper id %d. It's used by %q.", id, om.Name()))
	}
	allMappers[id] = m
}

// Get returns a mapper for the ROM's mapper id, initialized against
// rom, or an error if that mapper number isn't implemented.
func Get(rom *cartridge.ROM) (Mapper, error) {
	id := rom.MapperNum()
	m, ok := allMappers[id]
	if !ok {
		return nil, fmt.Errorf("unknown mapper id %d", id)
	}

	m.Init(rom)
	return m, nil
}

const (
	// Single-screen mirroring modes, used by mappers (AxROM) whose
	// mirroring is a runtime bank-select bit rather than a fixed
	// cartridge property. Numbered to continue the ppu package's
	// MIRROR_HORIZONTAL/MIRROR_VERTICAL/MIRROR_FOUR_SCREEN sequence.
	MIRROR_SINGLE_LOWER = 3
	MIRROR_SINGLE_UPPER = 4
)

// Mapper is a cartridge-side address decoder: bank switching, PRG/CHR
// storage, and mirroring all live behind this interface so the CPU bus
// and PPU memory map never need to know which board a cartridge uses.
type Mapper interface {
	ID() uint16
	Init(*cartridge.ROM)
	Name() string
	PrgRead(uint16) uint8   // Read PRG data, addr in 0x6000-0xFFFF
	PrgWrite(uint16, uint8) // Write PRG data, addr in 0x6000-0xFFFF
	ChrRead(uint16) uint8   // Read CHR data, addr in 0x0000-0x1FFF
	ChrWrite(uint16, uint8) // Write CHR data, addr in 0x0000-0x1FFF
	MirroringMode() uint8   // Which mirroring mode tilemap data is stored in
	HasSaveRAM() bool       // Whether the cartridge exposes save RAM at 0x6000-0x7FFF
}

type baseMapper struct {
	id   uint16
	rom  *cartridge.ROM
	name string

	// chrRAM backs CHR space for boards with no CHR ROM (chrSize==0 in
	// the header). nil when the cartridge supplies CHR ROM.
	chrRAM []uint8
}

func newBaseMapper(id uint16, name string) *baseMapper {
	return &baseMapper{id: id, name: name}
}

func (bm *baseMapper) ID() uint16 {
	return bm.id
}

func (bm *baseMapper) String() string {
	return bm.name
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) Init(r *cartridge.ROM) {
	bm.rom = r
	if r.ChrIsRAM() {
		bm.chrRAM = make([]uint8, CHR_RAM_SIZE)
	}
}

func (bm *baseMapper) MirroringMode() uint8 {
	return bm.rom.MirroringMode()
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.HasSaveRAM()
}

// chrRead/chrWrite dispatch between owned CHR RAM and the cartridge's
// CHR ROM, given an already bank-translated offset.
func (bm *baseMapper) chrRead(offset uint32) uint8 {
	if bm.chrRAM != nil {
		return bm.chrRAM[int(offset)%len(bm.chrRAM)]
	}
	return bm.rom.ChrRead(offset)
}

func (bm *baseMapper) chrWrite(offset uint32, val uint8) {
	if bm.chrRAM != nil {
		bm.chrRAM[int(offset)%len(bm.chrRAM)] = val
		return
	}
	// CHR ROM: ignore writes.
}

const CHR_RAM_SIZE = 8192

// warnOnceUnimplemented logs, at most once per mapper+reason, that a
// mapper-specific behavior (MMC3 IRQ timing, open-bus reads) is being
// approximated rather than fully emulated.
func warnOnceUnimplemented(mapperName, reason string) {
	warnonce.Warnf("mapper:"+mapperName+":"+reason, "%s mapper: %s not emulated, using best-effort stub", mapperName, reason)
}

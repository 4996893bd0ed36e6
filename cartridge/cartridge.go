package cartridge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadMagic is returned by New when the supplied bytes don't start
// with the iNES magic constant.
var ErrBadMagic = errors.New("cartridge: not an iNES image")

// ErrShortRead is returned by New when the supplied bytes are shorter
// than the header declares they should be.
var ErrShortRead = errors.New("cartridge: truncated ROM image")

type PlayChoicePROM struct {
	Data       [16]byte
	CounterOut [16]byte
}

// ROM holds a parsed iNES cartridge image: the header plus the PRG and
// CHR banks a Mapper indexes into. Loading the bytes off disk (or a
// network, or an embedded asset) is the host's job; New only parses
// bytes already in memory, per the emulator core's load(bytes) boundary.
type ROM struct {
	h         *header
	trainer   []byte // if present
	prg       []byte // 16384 * x bytes; x from header
	chr       []byte // 8192 * y bytes; y from header
	pcInstRom []byte // if present
	pcPROM    *PlayChoicePROM
}

const (
	headerSize     = 16
	TRAINER_SIZE   = 512
	PRG_BLOCK_SIZE = 16384
	CHR_BLOCK_SIZE = 8192
	PC_INST_SIZE   = 8192
	PC_PROM_SIZE   = 32
)

// New parses a complete iNES image already read into memory.
func New(data []byte) (*ROM, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("cartridge: header truncated (%d bytes): %w", len(data), ErrShortRead)
	}

	h := parseHeader(data[:headerSize])
	if !h.isINesFormat() {
		return nil, fmt.Errorf("cartridge: bad magic %q: %w", h.constant, ErrBadMagic)
	}

	r := &ROM{h: h}
	off := headerSize

	if h.hasTrainer() {
		end := off + TRAINER_SIZE
		if end > len(data) {
			return nil, fmt.Errorf("cartridge: truncated trainer data: %w", ErrShortRead)
		}
		r.trainer = append([]byte{}, data[off:end]...)
		off = end
	}

	prgLen := PRG_BLOCK_SIZE * int(h.prgSize)
	if off+prgLen > len(data) {
		return nil, fmt.Errorf("cartridge: truncated PRG ROM (want %d bytes): %w", prgLen, ErrShortRead)
	}
	r.prg = append([]byte{}, data[off:off+prgLen]...)
	off += prgLen

	chrLen := CHR_BLOCK_SIZE * int(h.chrSize)
	if off+chrLen > len(data) {
		return nil, fmt.Errorf("cartridge: truncated CHR ROM (want %d bytes): %w", chrLen, ErrShortRead)
	}
	r.chr = append([]byte{}, data[off:off+chrLen]...)
	off += chrLen

	if h.hasPlayChoice() {
		end := off + PC_INST_SIZE
		if end > len(data) {
			return nil, fmt.Errorf("cartridge: truncated PlayChoice INST ROM: %w", ErrShortRead)
		}
		r.pcInstRom = append([]byte{}, data[off:end]...)
		off = end

		// Some old ROMs omit the trailing PROM block even when the
		// PlayChoice bit is set; treat it as optional rather than
		// refusing to load an otherwise-playable image.
		if off+PC_PROM_SIZE <= len(data) {
			prom := data[off : off+PC_PROM_SIZE]
			r.pcPROM = &PlayChoicePROM{}
			copy(r.pcPROM.Data[:], prom)
		}
	}

	return r, nil
}

func (r *ROM) NumPrgBlocks() uint8 {
	return r.h.prgSize
}

func (r *ROM) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", r.h))
	if r.h.hasTrainer() {
		sb.WriteString(fmt.Sprintf("Trainer: %v\n", r.trainer))
	}
	sb.WriteString(fmt.Sprintf("PRG: %d bytes\n", len(r.prg)))
	sb.WriteString(fmt.Sprintf("CHR: %d bytes\n", len(r.chr)))

	return sb.String()
}

func (r *ROM) PrgSize() int { return len(r.prg) }
func (r *ROM) ChrSize() int { return len(r.chr) }

// ChrIsRAM reports whether this cartridge has no CHR ROM, meaning the
// board supplies its own CHR RAM and the mapper must allocate it.
func (r *ROM) ChrIsRAM() bool {
	return len(r.chr) == 0
}

func (r *ROM) PrgRead(addr uint32) uint8 {
	return r.prg[int(addr)%len(r.prg)]
}

func (r *ROM) PrgWrite(addr uint32, val uint8) {
	r.prg[int(addr)%len(r.prg)] = val
}

func (r *ROM) ChrRead(addr uint32) uint8 {
	return r.chr[addr]
}

func (r *ROM) ChrWrite(addr uint32, val uint8) {
	r.chr[addr] = val
}

func (r *ROM) MapperNum() uint16 {
	return uint16(r.h.mapperNum())
}

func (r *ROM) MirroringMode() uint8 {
	return r.h.mirroringMode()
}

func (r *ROM) HasSaveRAM() bool {
	return r.h.hasPrgRAM()
}

func (r *ROM) PrgRAMSize() uint8 {
	return r.h.prgRAMSize()
}

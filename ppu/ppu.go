// Package ppu implements the NES Picture Processing Unit: register
// protocol, nametable/palette memory, and scanline-accurate rendering.
package ppu

import (
	"github.com/kbrandt/nescart/internal/warnonce"
	"github.com/kbrandt/nescart/screen"
)

const (
	VRAM_SIZE    = 2048
	OAM_SIZE     = 256
	PALETTE_SIZE = 32
)

// Special registers, as seen by the CPU bus at 0x2000-0x2007 and 0x4014.
const (
	PPUCTRL   = 0x2000
	PPUMASK   = 0x2001
	PPUSTATUS = 0x2002
	OAMADDR   = 0x2003
	OAMDATA   = 0x2004
	PPUSCROLL = 0x2005
	PPUADDR   = 0x2006
	PPUDATA   = 0x2007
	OAMDMA    = 0x4014
)

// PPUCTRL bit flags
// 7  bit  0
// ---- ----
// VPHB SINN
// |||| ||||
// |||| ||++- Base nametable address
// |||| ||    (0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00)
// |||| |+--- VRAM address increment per CPU read/write of PPUDATA
// |||| |     (0: add 1, going across; 1: add 32, going down)
// |||| +---- Sprite pattern table address for 8x8 sprites
// ||||       (0: $0000; 1: $1000; ignored in 8x16 mode)
// |||+------ Background pattern table address (0: $0000; 1: $1000)
// ||+------- Sprite size (0: 8x8 pixels; 1: 8x16 pixels)
// |+-------- PPU master/slave select
// +--------- Generate an NMI at the start of vertical blank
const (
	CTRL_NAMETABLE1             = 1
	CTRL_NAMETABLE2             = 1 << 1
	CTRL_VRAM_ADD_INCREMENT     = 1 << 2
	CTRL_SPRITE_PATTERN_ADDR    = 1 << 3
	CTRL_BACKROUND_PATTERN_ADDR = 1 << 4
	CTRL_SPRITE_SIZE            = 1 << 5
	CTRL_MASTER_SLAVE_SELECT    = 1 << 6
	CTRL_GENERATE_NMI           = 1 << 7
)

const (
	CTRL_INCR_ACROSS = 1
	CTRL_INCR_DOWN   = 32
)

// PPUMASK bit flags
const (
	MASK_GREYSCALE            = 1
	MASK_SHOW_BACKGROUND_LEFT = 1 << 1
	MASK_SHOW_SPRITES_LEFT    = 1 << 2
	MASK_SHOW_BACKGROUND      = 1 << 3
	MASK_SHOW_SPRITES         = 1 << 4
)

// PPUSTATUS bit flags
const (
	STATUS_SPRITE_OVERFLOW = 1 << 5
	STATUS_SPRITE_0_HIT    = 1 << 6
	STATUS_VERTICAL_BLANK  = 1 << 7
)

// Bus is the PPU's view of the cartridge: pattern-table reads and
// writes delegate to the mapper, and TriggerNMI reaches back into the
// CPU when VBlank starts with NMI generation enabled.
type Bus interface {
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	TriggerNMI()
}

type PPU struct {
	bus    Bus
	screen *screen.Screen

	ticks int64

	paletteTable [PALETTE_SIZE]uint8
	oamData      [OAM_SIZE]uint8
	vram         [VRAM_SIZE]uint8
	mirrorMode   uint8

	registers map[uint16]uint8

	v      loopy // current VRAM address, targeted by PPUADDR/PPUDATA
	x      uint8 // fine x scroll (unused by the flat scanline renderer, kept for protocol fidelity)
	wLatch bool  // shared write-toggle for PPUSCROLL/PPUADDR

	scrollX, scrollY uint8

	scanline int // 0..261; 0..239 visible, 240 post-render, 241..260 vblank, 261 pre-render
	dot      int // 0..340

	bufferData uint8

	spriteZeroOnLine bool // sprite 0 intersects the scanline currently being evaluated
}

func New(b Bus, scr *screen.Screen) *PPU {
	return &PPU{
		bus:       b,
		screen:    scr,
		registers: make(map[uint16]uint8),
		scanline:  261, // start on the pre-render line
	}
}

// SetMirrorMode is called by the host composition layer whenever the
// mapper's mirroring mode may have changed (cartridge load, or after
// any CPU-side write for mappers with runtime-switchable mirroring
// such as MMC1 or AxROM).
func (p *PPU) SetMirrorMode(m uint8) {
	p.mirrorMode = m
}

func (p *PPU) WriteReg(r uint16, val uint8) {
	switch r {
	case PPUCTRL:
		wasNMIOff := p.registers[PPUCTRL]&CTRL_GENERATE_NMI == 0
		p.registers[PPUCTRL] = val
		if wasNMIOff && val&CTRL_GENERATE_NMI != 0 && p.registers[PPUSTATUS]&STATUS_VERTICAL_BLANK != 0 {
			p.bus.TriggerNMI()
		}
		return
	case PPUMASK:
	case OAMADDR:
	case OAMDATA:
		p.oamData[p.registers[OAMADDR]] = val
		p.registers[OAMADDR]++
	case PPUSCROLL:
		if !p.wLatch {
			p.scrollX = val
		} else {
			p.scrollY = val
		}
		p.wLatch = !p.wLatch
	case PPUADDR:
		if !p.wLatch {
			p.v.set((p.v.get() & 0x00FF) | (uint16(val&0x3F) << 8))
		} else {
			p.v.set((p.v.get() & 0xFF00) | uint16(val))
		}
		p.wLatch = !p.wLatch
	case PPUDATA:
		p.write(p.v.get(), val)
		p.vramIncrement()
		return
	}

	p.registers[r] = val
}

func (p *PPU) ReadReg(r uint16) uint8 {
	switch r {
	case PPUSTATUS:
		ret := p.registers[PPUSTATUS]
		p.registers[PPUSTATUS] &^= STATUS_VERTICAL_BLANK
		p.wLatch = false
		return ret
	case OAMDATA:
		return p.oamData[p.registers[OAMADDR]]
	case PPUDATA:
		addr := p.v.get()
		var ret uint8
		if addr >= 0x3F00 {
			// Palette reads bypass the read buffer, but the buffer
			// is still refilled from the underlying (mirrored)
			// nametable byte, matching real hardware.
			ret = p.read(addr)
			p.bufferData = p.read(addr - 0x1000)
		} else {
			ret = p.bufferData
			p.bufferData = p.read(addr)
		}
		p.vramIncrement()
		return ret
	}

	return p.registers[r]
}

// OAMDMA copies 256 bytes from page into OAM, starting at the current
// OAMADDR and wrapping, with OAMADDR left incremented past the copy.
func (p *PPU) OAMDMA(page []uint8) {
	start := p.registers[OAMADDR]
	for i := 0; i < 256; i++ {
		p.oamData[uint8(int(start)+i)] = page[i]
	}
	p.registers[OAMADDR] = start // wraps back to its starting value after 256 writes
}

func (p *PPU) vramIncrement() {
	step := uint16(CTRL_INCR_ACROSS)
	if p.registers[PPUCTRL]&CTRL_VRAM_ADD_INCREMENT != 0 {
		step = CTRL_INCR_DOWN
	}
	p.v.set(p.v.get() + step)
}

// Mirroring modes. Horizontal/vertical/four-screen come from the
// cartridge header; the single-screen modes are produced at runtime by
// mappers (AxROM, MMC1) whose mirroring is a bank-select bit rather
// than a fixed board property.
const (
	MIRROR_HORIZONTAL = iota
	MIRROR_VERTICAL
	MIRROR_FOUR_SCREEN
	MIRROR_SINGLE_LOWER
	MIRROR_SINGLE_UPPER
)

const (
	PATTERN_TABLE_0  = 0x0000
	NAMETABLE_0      = 0x2000
	NAMETABLE_MIRROR = 0x3EFF
	PALETTE_RAM      = 0x3F00
	PALETTE_MIRROR   = 0x3F20
)

// tileMapAddr maps a nametable-relative address (0-0xFFF) onto the
// 2 KiB of owned VRAM, according to the cartridge's mirroring.
// https://www.nesdev.org/wiki/Mirroring#Nametable_Mirroring
func (p *PPU) tileMapAddr(a uint16) uint16 {
	switch p.mirrorMode {
	case MIRROR_FOUR_SCREEN:
		// Four-screen boards carry their own 2 extra KiB of VRAM on
		// the cartridge; this core has no mapper that supplies it, so
		// fall back to horizontal mirroring rather than refusing to
		// render (matches the WARN-then-continue contract for
		// unimplemented mapper behavior).
		warnonce.Warnf("ppu:four-screen", "four-screen mirroring requested; no cartridge VRAM available, falling back to horizontal")
		fallthrough
	case MIRROR_HORIZONTAL:
		if a >= 0x800 {
			return 0x0400 + ((a - 0x800) % 0x400)
		}
		return a % 0x0400
	case MIRROR_VERTICAL:
		return a % 0x800
	case MIRROR_SINGLE_LOWER:
		return a % 0x400
	case MIRROR_SINGLE_UPPER:
		return 0x400 + (a % 0x400)
	}

	panic("unknown mirroring mode")
}

func (p *PPU) paletteAddr(a uint16) uint16 {
	x := (a - PALETTE_RAM) % 0x20
	// 0x3F10/14/18/1C alias 0x3F00/04/08/0C, bidirectionally.
	if x >= 0x10 && x%4 == 0 {
		x -= 0x10
	}
	return x
}

func (p *PPU) read(addr uint16) uint8 {
	a := addr % 0x4000

	switch {
	case a < NAMETABLE_0:
		return p.bus.ChrRead(a)
	case a < PALETTE_RAM:
		return p.vram[p.tileMapAddr((a-NAMETABLE_0)%0x1000)]
	case a <= NAMETABLE_MIRROR:
		return p.vram[p.tileMapAddr((a-NAMETABLE_0)%0x1000)]
	default:
		return p.paletteTable[p.paletteAddr(a)]
	}
}

func (p *PPU) write(addr uint16, val uint8) {
	a := addr % 0x4000

	switch {
	case a < NAMETABLE_0:
		p.bus.ChrWrite(a, val)
	case a <= NAMETABLE_MIRROR:
		p.vram[p.tileMapAddr((a-NAMETABLE_0)%0x1000)] = val
	default:
		p.paletteTable[p.paletteAddr(a)] = val
	}
}

func (p *PPU) showBackground() bool {
	return p.registers[PPUMASK]&MASK_SHOW_BACKGROUND != 0
}

func (p *PPU) showSprites() bool {
	return p.registers[PPUMASK]&MASK_SHOW_SPRITES != 0
}

func (p *PPU) spriteHeight() int {
	if p.registers[PPUCTRL]&CTRL_SPRITE_SIZE != 0 {
		return 16
	}
	return 8
}

// Tick advances the PPU by n dots (one dot == one PPU cycle, 1/3 of a
// CPU cycle). It is named Tick rather than Step because there's no
// branching execution here, just a fixed hardware loop.
func (p *PPU) Tick(n int) {
	for i := 0; i < n; i++ {
		p.tick()
	}
}

func (p *PPU) tick() {
	p.ticks++

	switch {
	case p.scanline >= 0 && p.scanline <= 239 && p.dot == 1:
		p.renderScanline(p.scanline)
	case p.scanline == 241 && p.dot == 0:
		p.registers[PPUSTATUS] |= STATUS_VERTICAL_BLANK
		if p.registers[PPUCTRL]&CTRL_GENERATE_NMI != 0 {
			p.bus.TriggerNMI()
		}
		p.screen.MarkFrameReady()
	case p.scanline == 261 && p.dot == 1:
		p.registers[PPUSTATUS] &^= STATUS_SPRITE_OVERFLOW | STATUS_SPRITE_0_HIT | STATUS_VERTICAL_BLANK
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
		}
	}
}

// renderScanline draws one full row of background and sprite pixels
// into the screen buffer, following the pixel-fetch algorithm: for
// each column, resolve the nametable tile, its attribute-table
// quadrant palette, and the pattern bits, then lay sprites over the
// result back-to-front so sprite 0 is drawn last and can be tested for
// a hit.
func (p *PPU) renderScanline(y int) {
	p.spriteZeroOnLine = false

	if p.showBackground() {
		p.renderBackgroundRow(y)
	}
	if p.showSprites() {
		p.renderSpritesRow(y)
	}
}

func (p *PPU) renderBackgroundRow(y int) {
	nametableAddr := uint16(NAMETABLE_0) + 0x400*uint16(p.registers[PPUCTRL]&0b11)
	attributeTableAddr := nametableAddr + 0x3C0
	patternAddr := uint16(0x1000) * uint16((p.registers[PPUCTRL]>>4)&1)

	yy := uint16(y) + uint16(p.scrollY)
	tileRow := yy / 8
	pixelRow := yy % 8
	attributeRow := tileRow / 4

	for x := 0; x < screen.Width; x++ {
		xx := uint16(x) + uint16(p.scrollX)
		tileColumn := xx / 8
		pixelColumn := xx % 8
		attributeColumn := tileColumn / 4

		attribute := p.read(attributeTableAddr + attributeRow*8 + attributeColumn)
		paletteNumber := ((attribute >> (4 * ((tileRow / 2) % 2))) >> (2 * ((tileColumn / 2) % 2))) & 0b11

		tileNumberAddr := nametableAddr + tileRow*32 + tileColumn
		tileNumber := p.read(tileNumberAddr)

		low := p.read(patternAddr + uint16(tileNumber)*16 + pixelRow)
		high := p.read(patternAddr + uint16(tileNumber)*16 + pixelRow + 8)
		lowBit := (low >> (7 - pixelColumn)) & 1
		highBit := (high >> (7 - pixelColumn)) & 1
		colorNumber := (highBit << 1) | lowBit

		var colorAddr uint16
		if colorNumber == 0 {
			colorAddr = PALETTE_RAM
		} else {
			colorAddr = PALETTE_RAM + 4*uint16(paletteNumber) + uint16(colorNumber)
		}
		p.screen.SetPixel(x, y, p.read(colorAddr))
	}
}

func (p *PPU) renderSpritesRow(y int) {
	patternAddr := uint16(0x1000) * uint16((p.registers[PPUCTRL]>>3)&1)
	height := p.spriteHeight()
	showLeft := p.registers[PPUMASK]&MASK_SHOW_SPRITES_LEFT != 0

	for number := 63; number >= 0; number-- {
		base := number * 4
		spriteY := int(p.oamData[base])
		tileNumber := p.oamData[base+1]
		spriteX := int(p.oamData[base+3])

		o := OAMFromBytes(p.oamData[base : base+4])
		paletteNumber := 4 + o.palette

		if y < spriteY || y >= spriteY+height {
			continue
		}
		row := y - spriteY
		if o.flipV {
			row = height - 1 - row
		}

		tile := tileNumber
		fetchAddr := patternAddr
		if height == 16 {
			fetchAddr = 0x1000 * uint16(tileNumber&1)
			tile = tileNumber &^ 1
			if row >= 8 {
				tile++
				row -= 8
			}
		}

		low := p.read(fetchAddr + uint16(tile)*16 + uint16(row))
		high := p.read(fetchAddr + uint16(tile)*16 + uint16(row) + 8)

		for col := 0; col < 8; col++ {
			pixelColumn := col
			if o.flipH {
				pixelColumn = 7 - col
			}
			x := spriteX + col
			if x >= screen.Width {
				continue
			}
			if x < 8 && !showLeft {
				continue
			}

			lowBit := (low >> (7 - pixelColumn)) & 1
			highBit := (high >> (7 - pixelColumn)) & 1
			colorNumber := (highBit << 1) | lowBit
			if colorNumber == 0 {
				continue
			}

			if number == 0 && p.screen.Pixel(x, y) != p.read(PALETTE_RAM) {
				p.registers[PPUSTATUS] |= STATUS_SPRITE_0_HIT
			}

			colorAddr := PALETTE_RAM + 4*uint16(paletteNumber) + uint16(colorNumber)
			p.screen.SetPixel(x, y, p.read(colorAddr))
		}
	}
}

package ppu

import (
	"testing"

	"github.com/kbrandt/nescart/screen"
)

type testBus struct {
	chr     [0x2000]uint8
	nmiHits int
}

func (b *testBus) ChrRead(addr uint16) uint8       { return b.chr[addr] }
func (b *testBus) ChrWrite(addr uint16, val uint8) { b.chr[addr] = val }
func (b *testBus) TriggerNMI()                     { b.nmiHits++ }

func newTestPPU() (*PPU, *testBus) {
	b := &testBus{}
	return New(b, screen.New()), b
}

func TestWriteRegPPUCTRLTriggersNMIDuringVBlank(t *testing.T) {
	p, b := newTestPPU()
	p.registers[PPUSTATUS] = STATUS_VERTICAL_BLANK

	p.WriteReg(PPUCTRL, CTRL_GENERATE_NMI)
	if b.nmiHits != 1 {
		t.Errorf("nmiHits = %d, want 1 (enabling NMI during vblank should fire immediately)", b.nmiHits)
	}
}

func TestPPUSCROLLLatch(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteReg(PPUSCROLL, 0x12)
	p.WriteReg(PPUSCROLL, 0x34)
	if p.scrollX != 0x12 || p.scrollY != 0x34 {
		t.Errorf("scrollX,scrollY = %#02x,%#02x, want 0x12,0x34", p.scrollX, p.scrollY)
	}
}

func TestPPUADDRLatchAndDataReadWrite(t *testing.T) {
	p, _ := newTestPPU()

	p.WriteReg(PPUADDR, 0x23)
	p.WriteReg(PPUADDR, 0x05)
	if got, want := p.v.get(), uint16(0x2305); got != want {
		t.Fatalf("v = %#04x, want %#04x", got, want)
	}

	p.WriteReg(PPUDATA, 0x42)
	// VRAM address auto-increments by 1 (PPUCTRL bit 2 clear).
	if got, want := p.v.get(), uint16(0x2306); got != want {
		t.Errorf("v after write = %#04x, want %#04x", got, want)
	}

	// Read back: PPUDATA reads are buffered one behind, except in
	// palette space.
	p.WriteReg(PPUADDR, 0x23)
	p.WriteReg(PPUADDR, 0x05)
	first := p.ReadReg(PPUDATA)
	if first == 0x42 {
		t.Error("first PPUDATA read should return the stale buffer, not the just-written byte")
	}
	second := p.ReadReg(PPUDATA)
	if second != 0x42 {
		t.Errorf("second PPUDATA read = %#02x, want 0x42", second)
	}
}

func TestPPUDATAPaletteReadIsUnbuffered(t *testing.T) {
	p, _ := newTestPPU()
	p.paletteTable[0x05] = 0x20

	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x05)
	if got := p.ReadReg(PPUDATA); got != 0x20 {
		t.Errorf("palette read = %#02x, want 0x20 (unbuffered)", got)
	}
}

func TestPaletteMirroring(t *testing.T) {
	p, _ := newTestPPU()

	p.write(0x3F00, 0x11)
	if got := p.read(0x3F10); got != 0x11 {
		t.Errorf("0x3F10 should alias 0x3F00, got %#02x", got)
	}

	p.write(0x3F1C, 0x22)
	if got := p.read(0x3F0C); got != 0x22 {
		t.Errorf("0x3F1C should alias 0x3F0C, got %#02x", got)
	}
}

func TestReadRegPPUSTATUSClearsVBlankAndLatch(t *testing.T) {
	p, _ := newTestPPU()
	p.registers[PPUSTATUS] = STATUS_VERTICAL_BLANK
	p.wLatch = true

	got := p.ReadReg(PPUSTATUS)
	if got&STATUS_VERTICAL_BLANK == 0 {
		t.Error("PPUSTATUS read should return the vblank bit that was set")
	}
	if p.registers[PPUSTATUS]&STATUS_VERTICAL_BLANK != 0 {
		t.Error("reading PPUSTATUS should clear the vblank bit")
	}
	if p.wLatch {
		t.Error("reading PPUSTATUS should reset the write-toggle latch")
	}
}

func TestOAMDMAStartsAtCurrentOAMADDR(t *testing.T) {
	p, _ := newTestPPU()
	p.registers[OAMADDR] = 0xFE

	page := make([]uint8, 256)
	for i := range page {
		page[i] = uint8(i)
	}
	p.OAMDMA(page)

	if got := p.oamData[0xFE]; got != 0 {
		t.Errorf("oamData[0xFE] = %#02x, want 0 (first DMA byte)", got)
	}
	if got := p.oamData[0xFD]; got != 255 {
		t.Errorf("oamData[0xFD] = %#02x, want 255 (wrapped last DMA byte)", got)
	}
}

func TestTickEntersVBlankAndSignalsFrameReady(t *testing.T) {
	p, b := newTestPPU()
	p.registers[PPUCTRL] = CTRL_GENERATE_NMI
	p.scanline = 240
	p.dot = 340

	p.Tick(2) // roll over into scanline 241, dot 0

	if p.registers[PPUSTATUS]&STATUS_VERTICAL_BLANK == 0 {
		t.Error("entering scanline 241 should set the vblank flag")
	}
	if b.nmiHits != 1 {
		t.Errorf("nmiHits = %d, want 1", b.nmiHits)
	}
	if !p.screen.FrameReady() {
		t.Error("entering vblank should mark the frame ready")
	}
}

func TestPreRenderScanlineClearsStatusBits(t *testing.T) {
	p, _ := newTestPPU()
	p.registers[PPUSTATUS] = STATUS_VERTICAL_BLANK | STATUS_SPRITE_0_HIT | STATUS_SPRITE_OVERFLOW
	p.scanline = 260
	p.dot = 340

	p.Tick(3) // roll into scanline 261, process dot 0, then dot 1 fires the clear

	if p.registers[PPUSTATUS] != 0 {
		t.Errorf("PPUSTATUS = %#02x after pre-render, want 0", p.registers[PPUSTATUS])
	}
}

func TestMirroringHorizontal(t *testing.T) {
	p, _ := newTestPPU()
	p.mirrorMode = MIRROR_HORIZONTAL

	p.write(0x2000, 0xAB)
	if got := p.read(0x2400); got != 0xAB {
		t.Errorf("horizontal mirroring: 0x2400 should mirror 0x2000, got %#02x", got)
	}
	if got := p.read(0x2800); got == 0xAB {
		t.Error("horizontal mirroring: 0x2800 should be a distinct nametable from 0x2000")
	}
}

func TestMirroringVertical(t *testing.T) {
	p, _ := newTestPPU()
	p.mirrorMode = MIRROR_VERTICAL

	p.write(0x2000, 0xCD)
	if got := p.read(0x2800); got != 0xCD {
		t.Errorf("vertical mirroring: 0x2800 should mirror 0x2000, got %#02x", got)
	}
}

func TestRenderBackgroundRowFillsScanline(t *testing.T) {
	p, b := newTestPPU()
	p.registers[PPUMASK] = MASK_SHOW_BACKGROUND
	// Pattern table entry 0: solid color-number 1 (low-plane all 1s, high-plane 0).
	for row := 0; row < 8; row++ {
		b.chr[row] = 0xFF
	}
	p.write(0x3F01, 0x05) // background palette 0, color 1

	p.renderScanline(0)

	if got := p.screen.Pixel(0, 0); got != 0x05 {
		t.Errorf("Pixel(0,0) = %#02x, want 0x05", got)
	}
}

func TestSpriteZeroHit(t *testing.T) {
	p, b := newTestPPU()
	p.registers[PPUMASK] = MASK_SHOW_BACKGROUND | MASK_SHOW_SPRITES | MASK_SHOW_SPRITES_LEFT
	p.registers[PPUCTRL] = CTRL_SPRITE_PATTERN_ADDR // sprites fetch from pattern table 1

	// Background: solid non-backdrop color at every pixel.
	for row := 0; row < 8; row++ {
		b.chr[row] = 0xFF
	}
	p.write(0x3F01, 0x05)

	// Sprite 0 pattern table (offset 0x1000): solid color-number 1.
	for row := 0; row < 8; row++ {
		b.chr[0x1000+row] = 0xFF
	}
	p.write(0x3F11, 0x06) // sprite palette 0, color 1

	p.oamData[0] = 0 // Y
	p.oamData[1] = 0 // tile
	p.oamData[2] = 0 // attributes
	p.oamData[3] = 0 // X

	p.renderScanline(0)

	if p.registers[PPUSTATUS]&STATUS_SPRITE_0_HIT == 0 {
		t.Error("overlapping opaque sprite 0 over opaque background should set sprite-0 hit")
	}
}

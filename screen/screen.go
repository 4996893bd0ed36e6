// Package screen owns the NES's 256x240 palette-indexed frame buffer.
// The PPU writes into it one pixel at a time as it renders; a host
// reads it back once per frame and maps palette indices to RGB for
// display. Keeping the buffer as its own type, rather than inline on
// the PPU, lets a host (or a test) read completed frames without
// reaching into PPU internals.
package screen

const (
	Width  = 256
	Height = 240
)

// Screen is a 256x240 grid of NES system-palette indices (0-63), plus
// a ready flag the PPU sets once per completed frame.
type Screen struct {
	pixels [Width * Height]uint8
	ready  bool
}

func New() *Screen {
	return &Screen{}
}

// SetPixel records a system-palette index (0-63) at (x, y). Out-of-range
// coordinates are ignored rather than panicking, since a mid-scanline
// sprite fetch can compute an x past 255 before the caller clips it.
func (s *Screen) SetPixel(x, y int, paletteIndex uint8) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	s.pixels[y*Width+x] = paletteIndex
}

func (s *Screen) Pixel(x, y int) uint8 {
	return s.pixels[y*Width+x]
}

// MarkFrameReady is called by the PPU once it finishes the visible
// portion of a frame (entering VBlank).
func (s *Screen) MarkFrameReady() {
	s.ready = true
}

func (s *Screen) FrameReady() bool {
	return s.ready
}

// TakeFrame returns the raw palette-index buffer and clears the ready
// flag. The returned slice aliases internal storage; callers that need
// to retain it across the next frame must copy it.
func (s *Screen) TakeFrame() []uint8 {
	s.ready = false
	return s.pixels[:]
}

// RGBA converts a system-palette index (0-63) to an (r, g, b, a) NES
// color, for hosts that want to blit directly to a framebuffer.
func RGBA(paletteIndex uint8) (r, g, b, a uint8) {
	c := SystemPalette[paletteIndex&0x3F]
	return c[0], c[1], c[2], 0xFF
}

// SystemPalette is the NES PPU's fixed 64-color output palette.
var SystemPalette = [64][3]uint8{
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96}, {0xA1, 0x00, 0x5E},
	{0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00}, {0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00},
	{0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E}, {0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05}, {0x05, 0x05, 0x05},
	{0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA}, {0xEB, 0x2F, 0xB5},
	{0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00}, {0xC4, 0x62, 0x00}, {0x35, 0x80, 0x00},
	{0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55}, {0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21}, {0x09, 0x09, 0x09}, {0x09, 0x09, 0x09},
	{0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF}, {0xD4, 0x80, 0xFF}, {0xFF, 0x45, 0xF3},
	{0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12}, {0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E},
	{0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4}, {0x05, 0xFB, 0xFF}, {0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D},
	{0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF}, {0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB}, {0xFF, 0xA8, 0xF9},
	{0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0}, {0xFF, 0xEF, 0xA6}, {0xFF, 0xF7, 0x9C}, {0xD7, 0xE8, 0x95},
	{0xA6, 0xED, 0xAF}, {0xA2, 0xF2, 0xDA}, {0x99, 0xFF, 0xFC}, {0xDD, 0xDD, 0xDD}, {0x11, 0x11, 0x11}, {0x11, 0x11, 0x11},
}

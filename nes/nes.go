// Package nes composes the CPU, PPU, bus and cartridge mapper into a
// single runnable emulator and implements ebiten.Game, so a host only
// needs to load a ROM and hand the result to ebiten.RunGame.
package nes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kbrandt/nescart/bus"
	"github.com/kbrandt/nescart/cartridge"
	"github.com/kbrandt/nescart/mappers"
	"github.com/kbrandt/nescart/screen"
)

// cyclesPerMasterTick is how many PPU dots the core advances per CPU
// cycle: the NES PPU runs at 3x the CPU's clock.
const cyclesPerMasterTick = 3

// Emulator is the whole machine. Host code (cmd/nescart) owns the
// window and input polling; everything else lives here.
type Emulator struct {
	bus    *bus.Bus
	screen *screen.Screen
}

// Load parses an iNES image already read into memory, resolves its
// mapper, and wires up a fresh, reset machine ready to run. ROM file
// I/O is the host's job; this only ever sees bytes.
func Load(data []byte) (*Emulator, error) {
	rom, err := cartridge.New(data)
	if err != nil {
		return nil, fmt.Errorf("nes: couldn't parse ROM: %w", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		return nil, fmt.Errorf("nes: couldn't resolve mapper: %w", err)
	}

	b, scr := bus.New(m)
	b.Reset()

	return &Emulator{bus: b, screen: scr}, nil
}

// SetButton forwards a controller button state to the given joypad
// port (1 or 2).
func (e *Emulator) SetButton(port int, button uint8, down bool) {
	e.bus.SetButton(port, button, down)
}

// FrameReady reports whether the PPU has completed a frame since the
// last TakeFrame call.
func (e *Emulator) FrameReady() bool {
	return e.screen.FrameReady()
}

// TakeFrame returns the 256x240 palette-index buffer for the
// completed frame and clears the ready flag.
func (e *Emulator) TakeFrame() []uint8 {
	return e.screen.TakeFrame()
}

// Step runs one CPU Step (one instruction, or the servicing of a
// pending interrupt) and interleaves the PPU three ticks per CPU
// cycle, the real NES's clock ratio. It returns
// the error a halted CPU reports (KIL or an unimplemented opcode), or
// nil if execution is proceeding normally.
func (e *Emulator) Step() error {
	cycles, err := e.bus.CPU.Step(e.bus)
	cycles += e.bus.TakeDMAStallCycles()
	e.bus.PPU.Tick(cycles * cyclesPerMasterTick)
	return err
}

// RunFrame steps the machine until a full frame is ready or the CPU
// halts, whichever comes first. It returns the frame buffer on
// success.
func (e *Emulator) RunFrame() ([]uint8, error) {
	for !e.FrameReady() {
		if err := e.Step(); err != nil {
			return nil, err
		}
	}
	return e.TakeFrame(), nil
}

// Layout implements ebiten.Game: the NES always renders at its native
// 256x240 resolution, and ebiten scales the presented image to fit
// whatever window size the host chooses.
func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screen.Width, screen.Height
}

// Update implements ebiten.Game. The emulator advances on its own
// schedule driven by Step/RunFrame (the host's game loop calls one of
// those before each Draw); Update itself does no work, matching the
// teacher's own bus.Update no-op.
func (e *Emulator) Update() error {
	return nil
}

// Draw implements ebiten.Game, blitting the most recent frame buffer
// into the ebiten image the host is presenting.
func (e *Emulator) Draw(img *ebiten.Image) {
	for y := 0; y < screen.Height; y++ {
		for x := 0; x < screen.Width; x++ {
			r, g, b, a := screen.RGBA(e.screen.Pixel(x, y))
			img.Set(x, y, color.RGBA{r, g, b, a})
		}
	}
}

// CPUString reports the CPU's register and flag state, for a text
// debugger to print between steps.
func (e *Emulator) CPUString() string {
	return e.bus.CPU.String()
}

// ReadMem reads one byte off the CPU's address space, for a text
// debugger to dump arbitrary memory ranges.
func (e *Emulator) ReadMem(addr uint16) uint8 {
	return e.bus.Read(addr)
}

// Reset re-loads the CPU's PC from the reset vector, as hitting the
// console's reset button would.
func (e *Emulator) Reset() {
	e.bus.Reset()
}

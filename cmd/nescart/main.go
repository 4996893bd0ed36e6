// Command nescart runs an NES ROM through the nes emulator core using
// ebiten as the host window, keyboard, and frame presentation layer.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kbrandt/nescart/joypad"
	"github.com/kbrandt/nescart/nes"
	"github.com/kbrandt/nescart/screen"
)

var romFile = flag.String("nes_rom", "", "Path to the NES ROM to run.")

// keyBindings maps ebiten keys to joypad button bits for controller
// port 1, in shift-register order: A, B, Select, Start, Up, Down,
// Left, Right. The host owns this mapping; the core's joypad package
// never imports ebiten.
var keyBindings = []struct {
	key    ebiten.Key
	button uint8
}{
	{ebiten.KeyA, joypad.ButtonA},
	{ebiten.KeyB, joypad.ButtonB},
	{ebiten.KeySpace, joypad.ButtonSelect},
	{ebiten.KeyEnter, joypad.ButtonStart},
	{ebiten.KeyUp, joypad.ButtonUp},
	{ebiten.KeyDown, joypad.ButtonDown},
	{ebiten.KeyLeft, joypad.ButtonLeft},
	{ebiten.KeyRight, joypad.ButtonRight},
}

// game adapts the emulator core to ebiten.Game: it drives one frame's
// worth of Step calls per Update, polls the keyboard into the core's
// joypad, and blits the completed frame on Draw.
type game struct {
	emu *nes.Emulator
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screen.Width, screen.Height
}

func (g *game) Update() error {
	for _, kb := range keyBindings {
		g.emu.SetButton(1, kb.button, ebiten.IsKeyPressed(kb.key))
	}

	if _, err := g.emu.RunFrame(); err != nil {
		return err
	}
	return nil
}

func (g *game) Draw(img *ebiten.Image) {
	g.emu.Draw(img)
}

func main() {
	flag.Parse()

	data, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("Couldn't read ROM: %v", err)
	}

	emu, err := nes.Load(data)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	ebiten.SetWindowSize(screen.Width*2, screen.Height*2)
	ebiten.SetWindowTitle("nescart")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&game{emu: emu}); err != nil {
		log.Fatal(err)
	}
}

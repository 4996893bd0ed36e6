package nes

import (
	"testing"

	"github.com/kbrandt/nescart/joypad"
)

// buildNROM constructs a minimal 32KB-PRG/8KB-CHR NROM (mapper 0)
// image with a reset vector pointing at the given code, placed at the
// very start of the PRG bank (mapped to 0x8000).
func buildNROM(t *testing.T, code []byte) []byte {
	t.Helper()

	h := make([]byte, 16)
	copy(h, []byte("NES\x1A"))
	h[4] = 2 // 32KB PRG
	h[5] = 1 // 8KB CHR

	prg := make([]byte, 16384*2)
	copy(prg, code)
	// Reset vector at the end of the PRG window (0xFFFC, last bank),
	// pointing back at 0x8000 where code starts.
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80

	chr := make([]byte, 8192)

	data := append(h, prg...)
	data = append(data, chr...)
	return data
}

func TestLoadParsesAndResets(t *testing.T) {
	data := buildNROM(t, []byte{0xEA}) // single NOP
	e, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e.bus.CPU.PC != 0x8000 {
		t.Errorf("PC after reset = %#04x, want 0x8000", e.bus.CPU.PC)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load([]byte("not a rom")); err == nil {
		t.Error("Load should reject data without the iNES magic")
	}
}

func TestStepAdvancesCPU(t *testing.T) {
	data := buildNROM(t, []byte{0xEA, 0xEA}) // two NOPs
	e, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := e.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if e.bus.CPU.PC != 0x8001 {
		t.Errorf("PC after one NOP = %#04x, want 0x8001", e.bus.CPU.PC)
	}
}

func TestRunFrameProducesAFullBuffer(t *testing.T) {
	// An infinite loop (JMP to self) so RunFrame's only exit is a
	// completed frame, not CPU halt.
	data := buildNROM(t, []byte{0x4C, 0x00, 0x80}) // JMP $8000
	e, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	frame, err := e.RunFrame()
	if err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	if len(frame) != 256*240 {
		t.Errorf("frame length = %d, want %d", len(frame), 256*240)
	}
}

func TestSetButtonReachesJoypad(t *testing.T) {
	data := buildNROM(t, []byte{0xEA})
	e, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	e.SetButton(1, joypad.ButtonStart, true)
	e.bus.Write(0x4016, 1)
	e.bus.Write(0x4016, 0)
	for i := 0; i < 3; i++ {
		e.bus.Read(0x4016) // skip A, B, Select
	}
	if got := e.bus.Read(0x4016); got != 1 {
		t.Errorf("Start bit = %d, want 1", got)
	}
}

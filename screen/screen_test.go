package screen

import "testing"

func TestSetPixelAndTakeFrame(t *testing.T) {
	s := New()
	if s.FrameReady() {
		t.Fatal("new screen reports a ready frame")
	}

	s.SetPixel(10, 20, 0x16)
	if got := s.Pixel(10, 20); got != 0x16 {
		t.Errorf("Pixel(10,20) = %#02x, want 0x16", got)
	}

	s.MarkFrameReady()
	if !s.FrameReady() {
		t.Fatal("MarkFrameReady didn't set the ready flag")
	}

	buf := s.TakeFrame()
	if len(buf) != Width*Height {
		t.Fatalf("TakeFrame len = %d, want %d", len(buf), Width*Height)
	}
	if s.FrameReady() {
		t.Error("TakeFrame should clear the ready flag")
	}
}

func TestSetPixelOutOfRangeIgnored(t *testing.T) {
	s := New()
	s.SetPixel(-1, 0, 1)
	s.SetPixel(0, -1, 1)
	s.SetPixel(Width, 0, 1)
	s.SetPixel(0, Height, 1)
	// Just must not panic; nothing else to assert.
}

func TestRGBA(t *testing.T) {
	r, g, b, a := RGBA(0x00)
	if r != 0x80 || g != 0x80 || b != 0x80 || a != 0xFF {
		t.Errorf("RGBA(0x00) = %02x,%02x,%02x,%02x, want 80,80,80,ff", r, g, b, a)
	}
}

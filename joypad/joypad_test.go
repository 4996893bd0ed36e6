package joypad

import "testing"

func TestStrobeReadsButtonARepeatedly(t *testing.T) {
	j := New()
	j.SetButton(ButtonA, true)
	j.Write(1) // strobe on

	for i := 0; i < 3; i++ {
		if got := j.Read(); got != 1 {
			t.Errorf("read %d = %d, want 1 while strobing", i, got)
		}
	}
}

func TestShiftRegisterOrder(t *testing.T) {
	j := New()
	j.SetButton(ButtonA, true)
	j.SetButton(ButtonSelect, true)
	j.SetButton(ButtonRight, true)

	j.Write(1) // latch
	j.Write(0) // begin shifting

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 1} // A,B,Select,Start,Up,Down,Left,Right
	for i, w := range want {
		if got := j.Read(); got != w {
			t.Errorf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestReadPastEighthBitReturnsOne(t *testing.T) {
	j := New()
	j.Write(1)
	j.Write(0)
	for i := 0; i < 8; i++ {
		j.Read()
	}
	if got := j.Read(); got != 1 {
		t.Errorf("9th read = %d, want 1", got)
	}
}

func TestLatchDuringStrobeResetsIndexOnNextCycle(t *testing.T) {
	j := New()
	j.SetButton(ButtonB, true)
	j.Write(1)
	j.Write(0)
	j.Read() // consumes A
	j.Write(1)
	j.Write(0)
	if got := j.Read(); got != 0 {
		t.Errorf("after re-latch, first read = %d, want 0 (A not pressed)", got)
	}
}

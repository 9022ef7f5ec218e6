package core

import (
	"testing"
	"time"
)

func TestInputFrameSequence(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionLeft)
	f.Set(ActionUp)

	seq := f.Sequence()
	expected := []Action{ActionUp, ActionLeft, ActionUp}
	if len(seq) != len(expected) {
		t.Fatalf("Sequence() len = %d, expected %d", len(seq), len(expected))
	}
	for i := range expected {
		if seq[i] != expected[i] {
			t.Errorf("Sequence()[%d] = %v, expected %v", i, seq[i], expected[i])
		}
	}

	if !f.Has(ActionLeft) || f.Has(ActionDown) {
		t.Error("Has() does not match the actions that were set")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Elapsed = 40 * time.Millisecond
	f.Clear()

	if !f.Empty() || f.Has(ActionPause) || len(f.Sequence()) != 0 {
		t.Error("Clear() should drop every action")
	}
	if f.Elapsed != 0 {
		t.Errorf("Elapsed = %v after Clear(), want 0", f.Elapsed)
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on a zero frame should work")
	}
}

func TestActionIsDirection(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirection() {
			t.Errorf("%v should be a direction", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionPause, ActionConfirm, ActionQuit} {
		if a.IsDirection() {
			t.Errorf("%v should not be a direction", a)
		}
	}
}

package host

import (
	"testing"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

func TestHeadlessSchedulesOnLoop(t *testing.T) {
	l := NewLoop(LoopConfig{})
	h := NewHeadless(l, geom.R(0, 0, 640, 480))

	ran := 0
	h.RequestFrame(func() { ran++ })
	dropped := h.RequestFrame(func() { ran += 10 })
	h.CancelFrame(dropped)
	l.Tick()

	if ran != 1 {
		t.Fatalf("frames ran %d times, want 1", ran)
	}
	if got := h.Geometry(); got != geom.R(0, 0, 640, 480) {
		t.Errorf("Geometry() = %v", got)
	}
}

func TestHeadlessRecordsState(t *testing.T) {
	h := NewHeadless(NewLoop(LoopConfig{}), geom.R(0, 0, 10, 10))

	h.SetPointerCapture(3)
	if !h.Captured(3) {
		t.Error("pointer 3 not captured")
	}
	h.ReleasePointerCapture(3)
	if h.Captured(3) {
		t.Error("pointer 3 still captured")
	}

	h.SetOverrideCursor(platform.CursorMove)
	if h.Cursor() != platform.CursorMove {
		t.Errorf("cursor = %v", h.Cursor())
	}
	h.ClearOverrideCursor()
	if h.Cursor() != platform.CursorDefault {
		t.Errorf("cursor after clear = %v", h.Cursor())
	}

	if h.Handler() != nil {
		t.Error("handler set before Subscribe")
	}
	h.Unsubscribe()
}

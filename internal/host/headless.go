package host

import (
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

// Headless is a surface without a display. It schedules frames on a Loop
// and otherwise only records what the compositor asks of it; input comes
// from callers of Handler.
type Headless struct {
	loop    *Loop
	rect    geom.Rect
	handler platform.InputHandler
	capture map[int]bool
	cursor  platform.Cursor
}

// NewHeadless creates a headless surface covering rect.
func NewHeadless(loop *Loop, rect geom.Rect) *Headless {
	return &Headless{loop: loop, rect: rect, capture: make(map[int]bool)}
}

func (h *Headless) Geometry() geom.Rect { return h.rect }

// Handler returns the subscribed input handler, or nil.
func (h *Headless) Handler() platform.InputHandler { return h.handler }

func (h *Headless) Subscribe(ih platform.InputHandler) { h.handler = ih }
func (h *Headless) Unsubscribe()                       { h.handler = nil }

func (h *Headless) SetPointerCapture(id int)     { h.capture[id] = true }
func (h *Headless) ReleasePointerCapture(id int) { delete(h.capture, id) }

// Captured reports whether pointer id is captured.
func (h *Headless) Captured(id int) bool { return h.capture[id] }

func (h *Headless) SetOverrideCursor(c platform.Cursor) { h.cursor = c }
func (h *Headless) ClearOverrideCursor()                { h.cursor = platform.CursorDefault }

// Cursor returns the current override cursor.
func (h *Headless) Cursor() platform.Cursor { return h.cursor }

func (h *Headless) RequestFrame(cb func()) platform.FrameID { return h.loop.RequestFrame(cb) }
func (h *Headless) CancelFrame(id platform.FrameID)         { h.loop.CancelFrame(id) }

var _ platform.Surface = (*Headless)(nil)

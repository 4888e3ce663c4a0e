// Package manip implements interactive window move and resize driven by
// pointer events.
package manip

import (
	"log/slog"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

// Screen is what the state machine needs from the compositor.
type Screen interface {
	Geometry() geom.Rect
	WindowAt(p geom.Point, padding int) platform.Window
	SetPointerCapture(pointerID int)
	IsBlocked(w platform.Window) bool
}

// Manipulator tracks at most one move or resize operation, bound to the
// pointer that started it.
type Manipulator struct {
	screen Screen
	logger *slog.Logger
	op     *operation
	last   lastPointer
}

// New creates an idle manipulator. A nil logger uses slog.Default().
func New(screen Screen, logger *slog.Logger) *Manipulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manipulator{screen: screen, logger: logger}
}

// Operation returns the kind of the active operation.
func (m *Manipulator) Operation() Operation {
	if m.op == nil {
		return OperationNone
	}
	return m.op.kind()
}

// Window returns the window being manipulated, or nil.
func (m *Manipulator) Window() platform.Window {
	if m.op == nil {
		return nil
	}
	return m.op.window
}

// PointerID returns the pointer bound to the active operation and whether
// there is one.
func (m *Manipulator) PointerID() (int, bool) {
	if m.op == nil {
		return 0, false
	}
	return m.op.pointerID, true
}

// OnPointerDown may start a move (pointer on the title region) or a resize
// (pointer on a resize region) of w. Only the primary button starts an
// operation, and only one operation runs at a time.
func (m *Manipulator) OnPointerDown(ev event.Pointer, w platform.Window) {
	if m.op != nil || w == nil {
		return
	}
	if ev.Button != event.ButtonLeft {
		return
	}
	if !w.States().Resizable() || m.screen.IsBlocked(w) {
		return
	}

	var data opData
	switch {
	case w.IsPointOnTitle(ev.Point):
		data = &moveData{lastPoint: ev.Point}
	case w.IsPointOnResizeRegion(ev.Point):
		data = newResizeData(w, w.ResizeEdgesAt(ev.Point), ev.Point)
	default:
		return
	}

	m.op = &operation{pointerID: ev.PointerID, window: w, data: data}
	m.logger.Debug("manipulation started",
		"operation", m.op.kind(),
		"pointer", ev.PointerID,
		"point", ev.Point)
}

// OnPointerMove records the pointer position and advances the active
// operation if ev comes from its pointer.
func (m *Manipulator) OnPointerMove(ev event.Pointer) {
	screen := m.screen.Geometry()
	m.last = lastPointer{point: screen.Clamp(ev.Point), pointerID: ev.PointerID}

	if m.op == nil || ev.PointerID != m.op.pointerID {
		return
	}

	switch data := m.op.data.(type) {
	case *moveData:
		target := screen.Clamp(ev.Point)
		delta := target.Sub(data.lastPoint)
		data.lastPoint = target
		m.op.window.SetPosition(m.op.window.Geometry().TopLeft().Add(delta))
	case *resizeData:
		m.resize(data, ev.Point.Sub(data.origin))
	default:
		panic("manip: active operation without operation data")
	}
}

// OnPointerUp ends the active operation once its pointer has released all
// buttons.
func (m *Manipulator) OnPointerUp(ev event.Pointer) {
	if m.op == nil || ev.Buttons != event.NoButtons || ev.PointerID != m.op.pointerID {
		return
	}
	m.logger.Debug("manipulation finished", "operation", m.op.kind(), "pointer", ev.PointerID)
	m.op = nil
}

// StartResize begins a resize of the window under the last recorded
// pointer position, for resizes initiated outside the pointer path (a
// frame button, a keyboard shortcut). It must not be called while an
// operation is active.
func (m *Manipulator) StartResize(edges geom.Edges) {
	if m.op != nil {
		panic("manip: resize must not start anew when one is in progress")
	}

	w := m.screen.WindowAt(m.last.point, 0)
	if w == nil {
		m.logger.Debug("start resize ignored: no window under pointer", "point", m.last.point)
		return
	}

	m.op = &operation{
		pointerID: m.last.pointerID,
		window:    w,
		data:      newResizeData(w, edges, m.last.point),
	}
	m.screen.SetPointerCapture(m.last.pointerID)
	m.logger.Debug("manipulation started",
		"operation", OperationResize,
		"pointer", m.last.pointerID,
		"edges", edges)
}

// Cancel drops the active operation without a pointer-up.
func (m *Manipulator) Cancel() {
	m.op = nil
}

// Release cancels the active operation if it manipulates w.
func (m *Manipulator) Release(w platform.Window) {
	if m.op != nil && m.op.window == w {
		m.op = nil
	}
}

func (m *Manipulator) resize(d *resizeData, amount geom.Point) {
	grow := geom.Point{
		X: clamp(axisGrow(d.edges, geom.EdgeLeft, geom.EdgeRight, amount.X), d.minShrink.X, d.maxGrow.X),
		Y: clamp(axisGrow(d.edges, geom.EdgeTop, geom.EdgeBottom, amount.Y), d.minShrink.Y, d.maxGrow.Y),
	}

	var left, top, right, bottom int
	if d.edges.Has(geom.EdgeLeft) {
		left = -grow.X
	}
	if d.edges.Has(geom.EdgeTop) {
		top = -grow.Y
	}
	if d.edges.Has(geom.EdgeRight) {
		right = grow.X
	}
	if d.edges.Has(geom.EdgeBottom) {
		bottom = grow.Y
	}
	m.op.window.SetGeometry(d.initial.Adjusted(left, top, right, bottom))
}

// axisGrow is how much the window grows along one axis for a pointer delta.
// Dragging the leading edge (left/top) outward means moving in the negative
// direction.
func axisGrow(edges, leading, trailing geom.Edges, delta int) int {
	switch {
	case edges.Has(leading):
		return -delta
	case edges.Has(trailing):
		return delta
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	return min(hi, max(lo, v))
}

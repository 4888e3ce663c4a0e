// Package platformtest provides recording fakes of the compositor's
// collaborators for use in tests.
package platformtest

import (
	"fmt"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

// Unbounded is the maximum size of a Window with no explicit limit.
const Unbounded = 16777215

// Window is a scriptable platform.Window. The frame is the client rect
// expanded by Border on every side plus TitleHeight above the client. The
// title band and the Border-wide edge band are the title and resize
// regions.
type Window struct {
	Name        string
	Client      geom.Rect
	Border      int
	TitleHeight int
	Min         geom.Size
	Max         geom.Size
	WinStates   platform.WindowStates
	Hidden      bool
	Shape       platform.Cursor

	Z           int
	Active      bool
	Activations int
	Paints      int
}

// NewWindow returns a window named name with the given client rect, a
// 4px border, a 20px title bar and unbounded maximum size.
func NewWindow(name string, client geom.Rect) *Window {
	return &Window{
		Name:        name,
		Client:      client,
		Border:      4,
		TitleHeight: 20,
		Max:         geom.Size{Width: Unbounded, Height: Unbounded},
	}
}

func (w *Window) String() string { return w.Name }

func (w *Window) Geometry() geom.Rect { return w.Client }

func (w *Window) FrameGeometry() geom.Rect {
	return w.Client.Adjusted(-w.Border, -w.Border-w.TitleHeight, w.Border, w.Border)
}

func (w *Window) MinimumSize() geom.Size        { return w.Min }
func (w *Window) MaximumSize() geom.Size        { return w.Max }
func (w *Window) States() platform.WindowStates { return w.WinStates }
func (w *Window) Visible() bool                 { return !w.Hidden }
func (w *Window) Cursor() platform.Cursor       { return w.Shape }
func (w *Window) SetGeometry(r geom.Rect)       { w.Client = r }
func (w *Window) SetPosition(p geom.Point)      { w.Client = w.Client.MovedTo(p) }
func (w *Window) SetZOrder(z int)               { w.Z = z }
func (w *Window) SetActive(active bool)         { w.Active = active }
func (w *Window) RequestActivate()              { w.Activations++ }
func (w *Window) Paint()                        { w.Paints++ }
func (w *Window) IsPointOnResizeRegion(p geom.Point) bool {
	return w.ResizeEdgesAt(p) != geom.EdgesNone
}

func (w *Window) IsPointOnTitle(p geom.Point) bool {
	f := w.FrameGeometry()
	if !f.Contains(p) || w.ResizeEdgesAt(p) != geom.EdgesNone {
		return false
	}
	return p.Y < w.Client.Y
}

func (w *Window) ResizeEdgesAt(p geom.Point) geom.Edges {
	f := w.FrameGeometry()
	if !f.Contains(p) {
		return geom.EdgesNone
	}
	var e geom.Edges
	if p.X < f.X+w.Border {
		e |= geom.EdgeLeft
	}
	if p.X > f.Right()-w.Border {
		e |= geom.EdgeRight
	}
	if p.Y < f.Y+w.Border {
		e |= geom.EdgeTop
	}
	if p.Y > f.Bottom()-w.Border {
		e |= geom.EdgeBottom
	}
	return e
}

// Delivery is one recorded WindowSystem call.
type Delivery struct {
	Kind   string
	Window string
	Event  any
}

func (d Delivery) String() string { return fmt.Sprintf("%s:%s", d.Kind, d.Window) }

// System is a recording platform.WindowSystem.
type System struct {
	Log     []Delivery
	Reject  map[platform.Window]bool
	Blocked map[platform.Window]bool
	// KeyResult is returned from DeliverKey.
	KeyResult bool
	// PopupsClosed counts CloseAllPopups calls.
	PopupsClosed int
	// OnDeliver, if set, runs after each delivery is recorded.
	OnDeliver func(d Delivery)
}

// NewSystem returns a System that accepts everything.
func NewSystem() *System {
	return &System{
		Reject:    map[platform.Window]bool{},
		Blocked:   map[platform.Window]bool{},
		KeyResult: true,
	}
}

func (s *System) record(kind string, w platform.Window, ev any) bool {
	name := ""
	if w != nil {
		name = fmt.Sprint(w)
	}
	d := Delivery{Kind: kind, Window: name, Event: ev}
	s.Log = append(s.Log, d)
	if s.OnDeliver != nil {
		s.OnDeliver(d)
	}
	return w == nil || !s.Reject[w]
}

// Kinds returns the recorded delivery kinds in order.
func (s *System) Kinds() []string {
	out := make([]string, 0, len(s.Log))
	for _, d := range s.Log {
		out = append(out, d.String())
	}
	return out
}

// Last returns the most recent delivery of the given kind.
func (s *System) Last(kind string) (Delivery, bool) {
	for i := len(s.Log) - 1; i >= 0; i-- {
		if s.Log[i].Kind == kind {
			return s.Log[i], true
		}
	}
	return Delivery{}, false
}

func (s *System) Reset() { s.Log = nil }

func (s *System) DeliverMouse(w platform.Window, ev event.Mouse) bool {
	return s.record("mouse", w, ev)
}

func (s *System) DeliverWheel(w platform.Window, ev event.WheelDelivery) bool {
	return s.record("wheel", w, ev)
}

func (s *System) DeliverKey(ev event.KeyDelivery) bool {
	s.record("key", nil, ev)
	return s.KeyResult
}

func (s *System) DeliverTouch(w platform.Window, ev event.TouchDelivery) bool {
	return s.record("touch", w, ev)
}

func (s *System) DeliverTouchCancel(w platform.Window, mods event.Modifiers) bool {
	return s.record("touch-cancel", w, mods)
}

func (s *System) DeliverEnter(w platform.Window, local, global geom.Point) bool {
	return s.record("enter", w, [2]geom.Point{local, global})
}

func (s *System) DeliverLeave(w platform.Window) bool {
	return s.record("leave", w, nil)
}

func (s *System) DeliverExpose(w platform.Window, region geom.Rect) bool {
	return s.record("expose", w, region)
}

func (s *System) DeliverUpdateRequest(w platform.Window) bool {
	return s.record("update-request", w, nil)
}

func (s *System) IsBlocked(w platform.Window) bool { return s.Blocked[w] }
func (s *System) CloseAllPopups()                  { s.PopupsClosed++ }

// Surface is a fake platform.Surface with manually driven frames.
type Surface struct {
	Rect      geom.Rect
	Handler   platform.InputHandler
	Captured  map[int]bool
	Override  platform.Cursor
	Overrides int
	Inverted  bool

	frames map[platform.FrameID]func()
	nextID platform.FrameID
	// Requested counts RequestFrame calls.
	Requested int
}

// NewSurface returns a surface covering rect.
func NewSurface(rect geom.Rect) *Surface {
	return &Surface{
		Rect:     rect,
		Captured: map[int]bool{},
		frames:   map[platform.FrameID]func(){},
	}
}

func (s *Surface) Geometry() geom.Rect               { return s.Rect }
func (s *Surface) Subscribe(h platform.InputHandler) { s.Handler = h }
func (s *Surface) Unsubscribe()                      { s.Handler = nil }
func (s *Surface) SetPointerCapture(id int)          { s.Captured[id] = true }
func (s *Surface) ReleasePointerCapture(id int)      { delete(s.Captured, id) }
func (s *Surface) InvertedScrolling() bool           { return s.Inverted }

func (s *Surface) SetOverrideCursor(c platform.Cursor) {
	s.Override = c
	s.Overrides++
}

func (s *Surface) ClearOverrideCursor() { s.Override = platform.CursorDefault }

func (s *Surface) RequestFrame(cb func()) platform.FrameID {
	s.nextID++
	s.Requested++
	s.frames[s.nextID] = cb
	return s.nextID
}

func (s *Surface) CancelFrame(id platform.FrameID) { delete(s.frames, id) }

// Pending reports how many frame callbacks are outstanding.
func (s *Surface) Pending() int { return len(s.frames) }

// Tick runs every frame callback registered before the call.
func (s *Surface) Tick() {
	due := s.frames
	s.frames = map[platform.FrameID]func(){}
	for _, cb := range due {
		cb()
	}
}

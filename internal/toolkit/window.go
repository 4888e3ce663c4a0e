// Package toolkit is a small window model that plugs into the compositor:
// decorated top-level windows and the window system that receives the
// compositor's event deliveries.
package toolkit

import (
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
	"github.com/1broseidon/wincomp/internal/scheduler"
)

const (
	DefaultTitleHeight = 24
	DefaultBorderWidth = 4
	// MaxSize is the maximum width and height of a window without an
	// explicit limit.
	MaxSize = 16777215
	// eventLogSize bounds the per-window delivery log.
	eventLogSize = 64
)

// Painter renders a window when the compositor paints it.
type Painter interface {
	PaintWindow(w *Window)
}

// Updater is the compositor side of a window's repaint and activation
// requests.
type Updater interface {
	RequestUpdate(w platform.Window, t scheduler.DeliveryType)
	RequestUpdateAll()
	Flush(w platform.Window)
	Raise(w platform.Window)
}

// Event is one delivery recorded by a window.
type Event struct {
	Kind string
	Data any
}

// Options configure a new window. Zero decoration sizes use the defaults;
// a zero maximum size is unbounded.
type Options struct {
	Title       string
	Geometry    geom.Rect
	Min         geom.Size
	Max         geom.Size
	States      platform.WindowStates
	Hidden      bool
	TitleHeight int
	BorderWidth int
}

// Window is a decorated top-level window: a client area with a border on
// every side and a title bar above the client.
type Window struct {
	title       string
	geometry    geom.Rect
	min         geom.Size
	max         geom.Size
	states      platform.WindowStates
	visible     bool
	cursor      platform.Cursor
	titleHeight int
	border      int

	z      int
	active bool
	paints int
	events []Event

	painter Painter
	updater Updater
	system  *System
}

// NewWindow creates a window from opts.
func NewWindow(opts Options) *Window {
	w := &Window{
		title:       opts.Title,
		geometry:    opts.Geometry,
		min:         opts.Min,
		max:         opts.Max,
		states:      opts.States,
		visible:     !opts.Hidden,
		titleHeight: opts.TitleHeight,
		border:      opts.BorderWidth,
	}
	if w.titleHeight <= 0 {
		w.titleHeight = DefaultTitleHeight
	}
	if w.border <= 0 {
		w.border = DefaultBorderWidth
	}
	if w.max.Width <= 0 {
		w.max.Width = MaxSize
	}
	if w.max.Height <= 0 {
		w.max.Height = MaxSize
	}
	return w
}

func (w *Window) String() string { return w.title }

func (w *Window) Title() string    { return w.title }
func (w *Window) Z() int           { return w.z }
func (w *Window) Active() bool     { return w.active }
func (w *Window) Paints() int      { return w.paints }
func (w *Window) BorderWidth() int { return w.border }
func (w *Window) TitleHeight() int { return w.titleHeight }

// Events returns the most recent deliveries to w, oldest first.
func (w *Window) Events() []Event { return append([]Event(nil), w.events...) }

func (w *Window) SetPainter(p Painter)              { w.painter = p }
func (w *Window) SetUpdater(u Updater)              { w.updater = u }
func (w *Window) SetStates(s platform.WindowStates) { w.states = s }
func (w *Window) SetVisible(visible bool)           { w.visible = visible }
func (w *Window) SetCursor(c platform.Cursor)       { w.cursor = c }
func (w *Window) SetMinimumSize(s geom.Size)        { w.min = s }
func (w *Window) SetMaximumSize(s geom.Size)        { w.max = s }

func (w *Window) Geometry() geom.Rect           { return w.geometry }
func (w *Window) MinimumSize() geom.Size        { return w.min }
func (w *Window) MaximumSize() geom.Size        { return w.max }
func (w *Window) States() platform.WindowStates { return w.states }
func (w *Window) Visible() bool                 { return w.visible }
func (w *Window) Cursor() platform.Cursor       { return w.cursor }

func (w *Window) FrameGeometry() geom.Rect {
	return w.geometry.Adjusted(-w.border, -w.border-w.titleHeight, w.border, w.border)
}

// TitleBar is the title band of the frame, between the side borders.
func (w *Window) TitleBar() geom.Rect {
	f := w.FrameGeometry()
	return geom.R(f.X+w.border, f.Y+w.border, f.Width-2*w.border, w.titleHeight)
}

// SetGeometry stores r as is; size limits are enforced by whoever resizes
// the window.
func (w *Window) SetGeometry(r geom.Rect) { w.geometry = r }

func (w *Window) SetPosition(p geom.Point) { w.geometry = w.geometry.MovedTo(p) }

func (w *Window) SetZOrder(z int) { w.z = z }

func (w *Window) SetActive(active bool) { w.active = active }

// RequestActivate raises an inactive w to the top of its compositor, then
// gives it keyboard focus in its window system. A window blocked by a
// modal is neither raised nor focused.
func (w *Window) RequestActivate() {
	blocked := w.system != nil && w.system.IsBlocked(w)
	if w.updater != nil && !w.active && !blocked {
		w.updater.Raise(w)
		w.updater.RequestUpdateAll()
	}
	if w.system != nil {
		w.system.activate(w)
	}
}

func (w *Window) IsPointOnTitle(p geom.Point) bool {
	return w.TitleBar().Contains(p) && w.ResizeEdgesAt(p) == geom.EdgesNone
}

func (w *Window) IsPointOnResizeRegion(p geom.Point) bool {
	return w.ResizeEdgesAt(p) != geom.EdgesNone
}

// ResizeEdgesAt returns the frame edges within border pixels of p.
// Corners report both edges.
func (w *Window) ResizeEdgesAt(p geom.Point) geom.Edges {
	f := w.FrameGeometry()
	if !f.Contains(p) {
		return geom.EdgesNone
	}
	var e geom.Edges
	if p.X < f.Left()+w.border {
		e |= geom.EdgeLeft
	} else if p.X > f.Right()-w.border {
		e |= geom.EdgeRight
	}
	if p.Y < f.Top()+w.border {
		e |= geom.EdgeTop
	} else if p.Y > f.Bottom()-w.border {
		e |= geom.EdgeBottom
	}
	return e
}

// Paint renders w through its painter.
func (w *Window) Paint() {
	w.paints++
	if w.painter != nil {
		w.painter.PaintWindow(w)
	}
}

// RequestUpdate asks for an update-request delivery on the next frame.
func (w *Window) RequestUpdate() {
	if w.updater != nil {
		w.updater.RequestUpdate(w, scheduler.UpdateRequestDelivery)
	}
}

// Flush presents new content of w on the next frame.
func (w *Window) Flush() {
	if w.updater != nil {
		w.updater.Flush(w)
	}
}

func (w *Window) record(kind string, data any) {
	if len(w.events) == eventLogSize {
		w.events = append(w.events[:0], w.events[1:]...)
	}
	w.events = append(w.events, Event{Kind: kind, Data: data})
}

var _ platform.Window = (*Window)(nil)

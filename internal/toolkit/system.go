package toolkit

import (
	"log/slog"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

// AcceptFunc decides whether w accepts a delivery of the given kind. Kinds
// are "mouse", "wheel", "key", "touch", "touch-cancel", "enter", "leave",
// "expose" and "update-request".
type AcceptFunc func(w *Window, kind string) bool

// System is the window system of a set of toolkit windows. It tracks the
// focus window, modal blocking and open popups, and records every delivery
// on the receiving window.
type System struct {
	logger  *slog.Logger
	windows []*Window
	focus   *Window
	modal   *Window
	popups  []*Window
	accept  AcceptFunc
}

// NewSystem creates an empty window system. A nil logger uses
// slog.Default().
func NewSystem(logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.Default()
	}
	return &System{logger: logger}
}

// Add registers w with s.
func (s *System) Add(w *Window) {
	w.system = s
	s.windows = append(s.windows, w)
}

// Remove unregisters w and clears focus, modal and popup state held by it.
func (s *System) Remove(w *Window) {
	for i, cur := range s.windows {
		if cur == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			break
		}
	}
	if s.focus == w {
		s.focus = nil
	}
	if s.modal == w {
		s.modal = nil
	}
	for i, p := range s.popups {
		if p == w {
			s.popups = append(s.popups[:i], s.popups[i+1:]...)
			break
		}
	}
	w.system = nil
}

// Windows returns the registered windows in registration order.
func (s *System) Windows() []*Window { return append([]*Window(nil), s.windows...) }

// Lookup returns the registered window with the given title.
func (s *System) Lookup(title string) (*Window, bool) {
	for _, w := range s.windows {
		if w.title == title {
			return w, true
		}
	}
	return nil, false
}

// Focus returns the window receiving key events.
func (s *System) Focus() *Window { return s.focus }

// SetAccept installs the delivery policy. By default every delivery to an
// unblocked window is accepted.
func (s *System) SetAccept(f AcceptFunc) { s.accept = f }

// SetModal blocks input to every window but w. A nil w lifts the block.
func (s *System) SetModal(w *Window) { s.modal = w }

// OpenPopup shows w as a transient popup, closed by CloseAllPopups.
func (s *System) OpenPopup(w *Window) {
	w.SetVisible(true)
	s.popups = append(s.popups, w)
}

// Popups returns the open popups.
func (s *System) Popups() []*Window { return append([]*Window(nil), s.popups...) }

func (s *System) activate(w *Window) {
	if s.IsBlocked(w) {
		s.logger.Debug("activation of blocked window ignored", "window", w.title)
		return
	}
	s.focus = w
}

func (s *System) IsBlocked(w platform.Window) bool {
	return s.modal != nil && w != platform.Window(s.modal)
}

func (s *System) CloseAllPopups() {
	for _, p := range s.popups {
		p.SetVisible(false)
		p.Flush()
	}
	if len(s.popups) > 0 {
		s.logger.Debug("popups closed", "count", len(s.popups))
	}
	s.popups = nil
}

// deliver records ev on w and applies the accept policy. Input to a window
// blocked by a modal window is rejected.
func (s *System) deliver(w platform.Window, kind string, ev any, input bool) bool {
	tw, ok := w.(*Window)
	if !ok || tw == nil {
		return false
	}
	if input && s.IsBlocked(tw) {
		return false
	}
	tw.record(kind, ev)
	if s.accept != nil {
		return s.accept(tw, kind)
	}
	return true
}

func (s *System) DeliverMouse(w platform.Window, ev event.Mouse) bool {
	return s.deliver(w, "mouse", ev, true)
}

func (s *System) DeliverWheel(w platform.Window, ev event.WheelDelivery) bool {
	return s.deliver(w, "wheel", ev, true)
}

// DeliverKey sends ev to the focus window.
func (s *System) DeliverKey(ev event.KeyDelivery) bool {
	if s.focus == nil {
		return false
	}
	return s.deliver(s.focus, "key", ev, true)
}

func (s *System) DeliverTouch(w platform.Window, ev event.TouchDelivery) bool {
	return s.deliver(w, "touch", ev, true)
}

func (s *System) DeliverTouchCancel(w platform.Window, mods event.Modifiers) bool {
	return s.deliver(w, "touch-cancel", mods, true)
}

func (s *System) DeliverEnter(w platform.Window, local, global geom.Point) bool {
	return s.deliver(w, "enter", local, false)
}

func (s *System) DeliverLeave(w platform.Window) bool {
	return s.deliver(w, "leave", nil, false)
}

// DeliverExpose makes the window redraw region and flush it.
func (s *System) DeliverExpose(w platform.Window, region geom.Rect) bool {
	accepted := s.deliver(w, "expose", region, false)
	if tw, ok := w.(*Window); ok && accepted {
		tw.Flush()
	}
	return accepted
}

// DeliverUpdateRequest makes the window redraw and flush.
func (s *System) DeliverUpdateRequest(w platform.Window) bool {
	accepted := s.deliver(w, "update-request", nil, false)
	if tw, ok := w.(*Window); ok && accepted {
		tw.Flush()
	}
	return accepted
}

var _ platform.WindowSystem = (*System)(nil)

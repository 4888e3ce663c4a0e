//go:build js && wasm

package web

import (
	"log/slog"
	"syscall/js"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

type listener struct {
	name string
	fn   js.Func
}

type frame struct {
	handle int
	fn     js.Func
}

// Surface is a DOM element hosting the compositor. Everything runs on the
// JS event loop, so there is no locking.
type Surface struct {
	elem   js.Value
	logger *slog.Logger

	listeners []listener
	frames    map[platform.FrameID]frame
	nextFrame platform.FrameID
	inverted  bool
}

// NewSurface wraps elem. The element is made focusable so it receives key
// events.
func NewSurface(elem js.Value, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	elem.Set("tabIndex", 0)
	return &Surface{
		elem:   elem,
		logger: logger,
		frames: make(map[platform.FrameID]frame),
	}
}

// Geometry returns the element's bounding client rect.
func (s *Surface) Geometry() geom.Rect {
	r := s.elem.Call("getBoundingClientRect")
	return geom.R(r.Get("left").Int(), r.Get("top").Int(), r.Get("width").Int(), r.Get("height").Int())
}

// InvertedScrolling reports the direction hint of the last wheel event
// WebKit delivered. Other engines never set it.
func (s *Surface) InvertedScrolling() bool { return s.inverted }

// Subscribe adds every DOM listener the compositor needs.
func (s *Surface) Subscribe(h platform.InputHandler) {
	s.Unsubscribe()

	for name, t := range pointerTypes {
		s.listen(name, func(e js.Value) bool {
			return h.HandlePointer(s.pointerEvent(t, e))
		})
	}
	for name, phase := range touchPhases {
		s.listen(name, func(e js.Value) bool {
			return h.HandleTouch(s.touchEvent(phase, e))
		})
	}
	s.listen("wheel", func(e js.Value) bool {
		if v := e.Get("webkitDirectionInvertedFromDevice"); v.Type() == js.TypeBoolean {
			s.inverted = v.Bool()
		}
		return h.HandleWheel(event.Wheel{
			Point:     clientPoint(e),
			DeltaMode: deltaModeFor(e.Get("deltaMode").Int()),
			DeltaX:    e.Get("deltaX").Float(),
			DeltaY:    e.Get("deltaY").Float(),
			Modifiers: modifiers(e),
		})
	})
	s.listen("keydown", func(e js.Value) bool { return h.HandleKey(keyEvent(event.KeyDown, e)) })
	s.listen("keyup", func(e js.Value) bool { return h.HandleKey(keyEvent(event.KeyUp, e)) })
	s.listen("focus", func(js.Value) bool { return h.HandleFocus() })
}

// listen registers f for name. When f reports the event as handled the
// browser default is suppressed.
func (s *Surface) listen(name string, f func(e js.Value) bool) {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		e := args[0]
		if f(e) {
			e.Call("preventDefault")
		}
		return nil
	})
	// Wheel and touch listeners are passive by default in some engines,
	// which makes preventDefault a no-op.
	s.elem.Call("addEventListener", name, fn, map[string]any{"passive": false})
	s.listeners = append(s.listeners, listener{name: name, fn: fn})
}

// Unsubscribe removes and releases every listener.
func (s *Surface) Unsubscribe() {
	for _, l := range s.listeners {
		s.elem.Call("removeEventListener", l.name, l.fn)
		l.fn.Release()
	}
	s.listeners = nil
}

func (s *Surface) pointerEvent(t event.Type, e js.Value) event.Pointer {
	return event.Pointer{
		Type:        t,
		PointerType: pointerTypeFor(e.Get("pointerType").String()),
		PointerID:   e.Get("pointerId").Int(),
		Point:       clientPoint(e),
		Button:      buttonFor(e.Get("button").Int()),
		Buttons:     buttonsFor(e.Get("buttons").Int()),
		Modifiers:   modifiers(e),
	}
}

func (s *Surface) touchEvent(phase event.TouchPhase, e js.Value) event.Touch {
	// Ended contacts are no longer in touches.
	list := e.Get("touches")
	if phase == event.TouchEnd || phase == event.TouchCancel {
		list = e.Get("changedTouches")
	}
	contacts := make([]event.Contact, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		t := list.Index(i)
		contacts = append(contacts, event.Contact{ID: t.Get("identifier").Int(), Point: clientPoint(t)})
	}
	return event.Touch{Phase: phase, Contacts: contacts, Modifiers: modifiers(e)}
}

func keyEvent(phase event.KeyPhase, e js.Value) event.Key {
	return event.Key{
		Phase:     phase,
		Key:       e.Get("key").String(),
		Code:      e.Get("keyCode").Int(),
		Modifiers: modifiers(e),
	}
}

func clientPoint(v js.Value) geom.Point {
	return geom.Pt(int(v.Get("clientX").Float()), int(v.Get("clientY").Float()))
}

func modifiers(e js.Value) event.Modifiers {
	return modifiersFor(e.Get("shiftKey").Truthy(), e.Get("ctrlKey").Truthy(), e.Get("altKey").Truthy(), e.Get("metaKey").Truthy())
}

func (s *Surface) SetPointerCapture(pointerID int) {
	s.elem.Call("setPointerCapture", pointerID)
}

func (s *Surface) ReleasePointerCapture(pointerID int) {
	if s.elem.Call("hasPointerCapture", pointerID).Bool() {
		s.elem.Call("releasePointerCapture", pointerID)
	}
}

func (s *Surface) SetOverrideCursor(c platform.Cursor) {
	s.elem.Get("style").Set("cursor", c.String())
}

func (s *Surface) ClearOverrideCursor() {
	s.elem.Get("style").Set("cursor", "")
}

// RequestFrame schedules cb with requestAnimationFrame.
func (s *Surface) RequestFrame(cb func()) platform.FrameID {
	s.nextFrame++
	id := s.nextFrame

	var fn js.Func
	fn = js.FuncOf(func(js.Value, []js.Value) any {
		delete(s.frames, id)
		fn.Release()
		cb()
		return nil
	})
	handle := js.Global().Call("requestAnimationFrame", fn).Int()
	s.frames[id] = frame{handle: handle, fn: fn}
	return id
}

func (s *Surface) CancelFrame(id platform.FrameID) {
	f, ok := s.frames[id]
	if !ok {
		return
	}
	js.Global().Call("cancelAnimationFrame", f.handle)
	f.fn.Release()
	delete(s.frames, id)
}

var (
	_ platform.Surface               = (*Surface)(nil)
	_ platform.InvertedScrollingHint = (*Surface)(nil)
)

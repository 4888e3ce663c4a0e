// Package platform declares the collaborators the compositor talks to: the
// toolkit's windows and window system, and the native surface that hosts
// them.
package platform

import (
	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
)

// WindowStates is a set of window-state flags.
type WindowStates uint8

const (
	StateMaximized WindowStates = 1 << iota
	StateFullScreen
	StateMinimized
)

// Has reports whether all states in o are set.
func (s WindowStates) Has(o WindowStates) bool { return o != 0 && s&o == o }

// Resizable reports whether a window in these states may be moved or
// resized interactively.
func (s WindowStates) Resizable() bool {
	return !s.Has(StateMaximized) && !s.Has(StateFullScreen)
}

// Window is a toolkit window as seen by the compositor. The compositor
// never owns a Window; identity is interface equality.
type Window interface {
	// Geometry is the client area in screen coordinates.
	Geometry() geom.Rect
	// FrameGeometry is the client area plus decorations.
	FrameGeometry() geom.Rect
	MinimumSize() geom.Size
	MaximumSize() geom.Size
	States() WindowStates
	Visible() bool
	Cursor() Cursor

	SetGeometry(r geom.Rect)
	SetPosition(p geom.Point)
	SetZOrder(z int)
	// SetActive is the activation-changed notification from the stack.
	SetActive(active bool)
	RequestActivate()

	IsPointOnTitle(p geom.Point) bool
	IsPointOnResizeRegion(p geom.Point) bool
	ResizeEdgesAt(p geom.Point) geom.Edges

	// Paint renders the window now.
	Paint()
}

// WindowSystem is the toolkit side of event delivery. Every Deliver call is
// synchronous and reports whether the target accepted the event.
type WindowSystem interface {
	DeliverMouse(w Window, ev event.Mouse) bool
	DeliverWheel(w Window, ev event.WheelDelivery) bool
	DeliverKey(ev event.KeyDelivery) bool
	DeliverTouch(w Window, ev event.TouchDelivery) bool
	DeliverTouchCancel(w Window, mods event.Modifiers) bool
	DeliverEnter(w Window, local, global geom.Point) bool
	DeliverLeave(w Window) bool
	DeliverExpose(w Window, region geom.Rect) bool
	DeliverUpdateRequest(w Window) bool

	// IsBlocked reports whether w is blocked by a modal window.
	IsBlocked(w Window) bool
	CloseAllPopups()
}

// ClipboardResult is the verdict of a ClipboardInterceptor.
type ClipboardResult int

const (
	// ClipboardIgnored lets the key event through unchanged.
	ClipboardIgnored ClipboardResult = iota
	// ClipboardNativeNeeded claims the event for the native clipboard; it
	// is not delivered to the toolkit.
	ClipboardNativeNeeded
	// ClipboardNativeWithCopiedData delivers the event and still lets the
	// native handler run afterwards.
	ClipboardNativeWithCopiedData
)

// KeyTranslator maps raw key events to toolkit key events.
type KeyTranslator interface {
	TranslateKey(ev event.Key) event.KeyDelivery
}

// ClipboardInterceptor inspects translated key events for clipboard
// shortcuts.
type ClipboardInterceptor interface {
	ProcessKey(ev event.KeyDelivery) ClipboardResult
}

// InputHandler receives normalized native input. Each method reports
// whether the native default handling should be suppressed.
type InputHandler interface {
	HandlePointer(ev event.Pointer) bool
	HandleWheel(ev event.Wheel) bool
	HandleTouch(ev event.Touch) bool
	HandleKey(ev event.Key) bool
	HandleFocus() bool
}

// FrameID identifies a scheduled frame callback.
type FrameID int

// FrameScheduler runs callbacks on the next display refresh tick.
type FrameScheduler interface {
	RequestFrame(cb func()) FrameID
	CancelFrame(id FrameID)
}

// Surface abstracts the native element all windows are composited into.
type Surface interface {
	FrameScheduler

	// Geometry is the surface rect in screen coordinates.
	Geometry() geom.Rect

	// Subscribe installs every native input callback; Unsubscribe removes
	// them again.
	Subscribe(h InputHandler)
	Unsubscribe()

	SetPointerCapture(pointerID int)
	ReleasePointerCapture(pointerID int)

	SetOverrideCursor(c Cursor)
	ClearOverrideCursor()
}

// InvertedScrollingHint is implemented by surfaces that can tell whether
// the device delivers naturally inverted wheel deltas.
type InvertedScrollingHint interface {
	InvertedScrolling() bool
}

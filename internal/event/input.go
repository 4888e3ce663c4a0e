// Package event defines the event vocabulary of the compositor: the
// normalized input events a surface hands in, and the toolkit-level events
// the compositor synthesizes and delivers to windows.
package event

import "github.com/1broseidon/wincomp/internal/geom"

// Type identifies a normalized pointer event.
type Type int

const (
	PointerDown Type = iota
	PointerMove
	PointerUp
	PointerEnter
	PointerLeave
)

// String returns the string representation of the pointer event type.
func (t Type) String() string {
	switch t {
	case PointerDown:
		return "pointer-down"
	case PointerMove:
		return "pointer-move"
	case PointerUp:
		return "pointer-up"
	case PointerEnter:
		return "pointer-enter"
	case PointerLeave:
		return "pointer-leave"
	default:
		return "unknown"
	}
}

// PointerType is the kind of device that produced a pointer event.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerPen
	PointerTouch
)

// Button identifies a single mouse button. ButtonNone is used for events
// that involve no button change (moves).
type Button uint8

const (
	ButtonNone   Button = 0
	ButtonLeft   Button = 1 << 0
	ButtonRight  Button = 1 << 1
	ButtonMiddle Button = 1 << 2
	ButtonBack   Button = 1 << 3
	ButtonFwd    Button = 1 << 4
)

// Buttons is the set of buttons held down while an event happened.
type Buttons uint8

// NoButtons is the empty button set.
const NoButtons Buttons = 0

// Has reports whether b is held.
func (bs Buttons) Has(b Button) bool { return b != ButtonNone && bs&Buttons(b) != 0 }

// Modifiers is a set of keyboard modifiers.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Pointer is a normalized pointer event. Point is in screen coordinates.
type Pointer struct {
	Type        Type
	PointerType PointerType
	PointerID   int
	Point       geom.Point
	Button      Button
	Buttons     Buttons
	Modifiers   Modifiers
}

// DeltaMode is the unit of a wheel delta.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// Wheel is a normalized wheel event. Point is in screen coordinates.
type Wheel struct {
	Point     geom.Point
	DeltaMode DeltaMode
	DeltaX    float64
	DeltaY    float64
	Modifiers Modifiers
}

// TouchPhase identifies which touch callback produced a Touch event.
type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// Contact is one finger of a touch event, in screen coordinates.
type Contact struct {
	ID    int
	Point geom.Point
}

// Touch carries every contact reported by one native touch callback.
type Touch struct {
	Phase     TouchPhase
	Contacts  []Contact
	Modifiers Modifiers
}

// KeyPhase distinguishes key presses from releases.
type KeyPhase int

const (
	KeyDown KeyPhase = iota
	KeyUp
)

// Key is a raw key event. Key holds the platform's key string ("a", "Enter")
// and Code the physical key code; translation to a toolkit key happens
// outside the compositor.
type Key struct {
	Phase     KeyPhase
	Key       string
	Code      int
	Modifiers Modifiers
}

package event

import "github.com/1broseidon/wincomp/internal/geom"

// Area says which part of a window a pointer event hit.
type Area int

const (
	AreaClient Area = iota
	AreaNonClient
)

// MouseKind is the toolkit-level mouse event type.
type MouseKind int

const (
	MouseNone MouseKind = iota
	MouseButtonPress
	MouseButtonRelease
	MouseMove
	NonClientButtonPress
	NonClientButtonRelease
	NonClientMove
)

func (k MouseKind) String() string {
	switch k {
	case MouseButtonPress:
		return "press"
	case MouseButtonRelease:
		return "release"
	case MouseMove:
		return "move"
	case NonClientButtonPress:
		return "nc-press"
	case NonClientButtonRelease:
		return "nc-release"
	case NonClientMove:
		return "nc-move"
	default:
		return "none"
	}
}

// MouseKindFor maps a pointer event type and the hit window area to the
// synthesized mouse event kind. The second result is false for combinations
// that have no mouse event (enter/leave).
func MouseKindFor(t Type, area Area) (MouseKind, bool) {
	switch t {
	case PointerDown:
		if area == AreaClient {
			return MouseButtonPress, true
		}
		return NonClientButtonPress, true
	case PointerUp:
		if area == AreaClient {
			return MouseButtonRelease, true
		}
		return NonClientButtonRelease, true
	case PointerMove:
		if area == AreaClient {
			return MouseMove, true
		}
		return NonClientMove, true
	}
	return MouseNone, false
}

// Mouse is a synthesized mouse event. Local is relative to the target
// window's client origin, Global is in screen coordinates.
type Mouse struct {
	Kind      MouseKind
	Local     geom.Point
	Global    geom.Point
	Button    Button
	Buttons   Buttons
	Modifiers Modifiers
}

// WheelDelivery is a synthesized wheel event.
type WheelDelivery struct {
	Local      geom.Point
	Global     geom.Point
	PixelDelta geom.Point
	AngleDelta geom.Point
	Modifiers  Modifiers
	// Inverted reports that the device delivers naturally inverted deltas.
	Inverted bool
}

// TouchState is the state of one touch point within a batch.
type TouchState int

const (
	TouchPressed TouchState = iota
	TouchUpdated
	TouchStationary
	TouchReleased
)

func (s TouchState) String() string {
	switch s {
	case TouchPressed:
		return "pressed"
	case TouchUpdated:
		return "updated"
	case TouchStationary:
		return "stationary"
	case TouchReleased:
		return "released"
	default:
		return "unknown"
	}
}

// TouchPoint is one contact in a synthesized touch batch.
type TouchPoint struct {
	ID             int
	Area           geom.Rect
	NormalPosition geom.PointF
	Pressure       float64
	State          TouchState
}

// TouchDelivery is a synthesized touch batch.
type TouchDelivery struct {
	Points    []TouchPoint
	Modifiers Modifiers
}

// KeyDelivery is a translated key event ready for the toolkit.
type KeyDelivery struct {
	Phase     KeyPhase
	Key       int
	Modifiers Modifiers
	Text      string
}

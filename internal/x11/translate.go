package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/wincomp/internal/event"
)

// X core protocol button numbers.
const (
	xButtonLeft       xproto.Button = 1
	xButtonMiddle     xproto.Button = 2
	xButtonRight      xproto.Button = 3
	xButtonWheelUp    xproto.Button = 4
	xButtonWheelDown  xproto.Button = 5
	xButtonWheelLeft  xproto.Button = 6
	xButtonWheelRight xproto.Button = 7
	xButtonBack       xproto.Button = 8
	xButtonForward    xproto.Button = 9
)

// buttonFor maps an X button number to a mouse button. Wheel buttons and
// unknown numbers map to ButtonNone.
func buttonFor(detail xproto.Button) event.Button {
	switch detail {
	case xButtonLeft:
		return event.ButtonLeft
	case xButtonMiddle:
		return event.ButtonMiddle
	case xButtonRight:
		return event.ButtonRight
	case xButtonBack:
		return event.ButtonBack
	case xButtonForward:
		return event.ButtonFwd
	}
	return event.ButtonNone
}

// wheelDelta returns the line delta of a wheel button press.
func wheelDelta(detail xproto.Button) (dx, dy float64, ok bool) {
	switch detail {
	case xButtonWheelUp:
		return 0, -1, true
	case xButtonWheelDown:
		return 0, 1, true
	case xButtonWheelLeft:
		return -1, 0, true
	case xButtonWheelRight:
		return 1, 0, true
	}
	return 0, 0, false
}

// buttonsFromState reads the held buttons out of an X key/button mask. The
// mask describes the state before the event, so press and release events
// fold their own button in or out.
func buttonsFromState(state uint16) event.Buttons {
	var bs event.Buttons
	if state&xproto.KeyButMaskButton1 != 0 {
		bs |= event.Buttons(event.ButtonLeft)
	}
	if state&xproto.KeyButMaskButton2 != 0 {
		bs |= event.Buttons(event.ButtonMiddle)
	}
	if state&xproto.KeyButMaskButton3 != 0 {
		bs |= event.Buttons(event.ButtonRight)
	}
	return bs
}

func modifiersFromState(state uint16) event.Modifiers {
	var mods event.Modifiers
	if state&xproto.KeyButMaskShift != 0 {
		mods |= event.ModShift
	}
	if state&xproto.KeyButMaskControl != 0 {
		mods |= event.ModCtrl
	}
	if state&xproto.KeyButMaskMod1 != 0 {
		mods |= event.ModAlt
	}
	if state&xproto.KeyButMaskMod4 != 0 {
		mods |= event.ModMeta
	}
	return mods
}

func stateFromModifiers(mods event.Modifiers) uint16 {
	var state uint16
	if mods&event.ModShift != 0 {
		state |= xproto.KeyButMaskShift
	}
	if mods&event.ModCtrl != 0 {
		state |= xproto.KeyButMaskControl
	}
	if mods&event.ModAlt != 0 {
		state |= xproto.KeyButMaskMod1
	}
	if mods&event.ModMeta != 0 {
		state |= xproto.KeyButMaskMod4
	}
	return state
}

// pointerEvent builds a mouse pointer event from the fields every X
// pointer event carries.
func pointerEvent(t event.Type, x, y int16, state uint16) event.Pointer {
	return event.Pointer{
		Type:        t,
		PointerType: event.PointerMouse,
		PointerID:   1,
		Point:       pointAt(x, y),
		Buttons:     buttonsFromState(state),
		Modifiers:   modifiersFromState(state),
	}
}

// pressEvent translates a ButtonPress into either a pointer-down or a wheel
// event. ok is false for buttons the compositor has no use for.
func pressEvent(detail xproto.Button, x, y int16, state uint16) (ptr event.Pointer, wheel event.Wheel, isWheel, ok bool) {
	if dx, dy, w := wheelDelta(detail); w {
		return event.Pointer{}, event.Wheel{
			Point:     pointAt(x, y),
			DeltaMode: event.DeltaLine,
			DeltaX:    dx,
			DeltaY:    dy,
			Modifiers: modifiersFromState(state),
		}, true, true
	}
	b := buttonFor(detail)
	if b == event.ButtonNone {
		return event.Pointer{}, event.Wheel{}, false, false
	}
	ptr = pointerEvent(event.PointerDown, x, y, state)
	ptr.Button = b
	ptr.Buttons |= event.Buttons(b)
	return ptr, event.Wheel{}, false, true
}

// releaseEvent translates a ButtonRelease. Wheel releases are dropped.
func releaseEvent(detail xproto.Button, x, y int16, state uint16) (event.Pointer, bool) {
	b := buttonFor(detail)
	if b == event.ButtonNone {
		return event.Pointer{}, false
	}
	ptr := pointerEvent(event.PointerUp, x, y, state)
	ptr.Button = b
	ptr.Buttons &^= event.Buttons(b)
	return ptr, true
}

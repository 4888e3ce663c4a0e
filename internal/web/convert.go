// Package web hosts the compositor inside a browser page. The surface is a
// DOM element; its callbacks feed the compositor directly on the JS event
// loop.
package web

import (
	"strconv"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
)

// pointerTypes maps DOM event names to pointer event types.
var pointerTypes = map[string]event.Type{
	"pointerdown":  event.PointerDown,
	"pointermove":  event.PointerMove,
	"pointerup":    event.PointerUp,
	"pointerenter": event.PointerEnter,
	"pointerleave": event.PointerLeave,
}

// touchPhases maps DOM touch event names to touch phases.
var touchPhases = map[string]event.TouchPhase{
	"touchstart":  event.TouchStart,
	"touchmove":   event.TouchMove,
	"touchend":    event.TouchEnd,
	"touchcancel": event.TouchCancel,
}

// buttonFor maps PointerEvent.button to a mouse button. -1 means no button
// changed.
func buttonFor(button int) event.Button {
	switch button {
	case 0:
		return event.ButtonLeft
	case 1:
		return event.ButtonMiddle
	case 2:
		return event.ButtonRight
	case 3:
		return event.ButtonBack
	case 4:
		return event.ButtonFwd
	}
	return event.ButtonNone
}

// buttonsFor maps the PointerEvent.buttons bitmask, which orders right
// before middle.
func buttonsFor(mask int) event.Buttons {
	var bs event.Buttons
	for bit, b := range []event.Button{event.ButtonLeft, event.ButtonRight, event.ButtonMiddle, event.ButtonBack, event.ButtonFwd} {
		if mask&(1<<bit) != 0 {
			bs |= event.Buttons(b)
		}
	}
	return bs
}

func pointerTypeFor(name string) event.PointerType {
	switch name {
	case "pen":
		return event.PointerPen
	case "touch":
		return event.PointerTouch
	}
	return event.PointerMouse
}

func deltaModeFor(mode int) event.DeltaMode {
	switch mode {
	case 1:
		return event.DeltaLine
	case 2:
		return event.DeltaPage
	}
	return event.DeltaPixel
}

func modifiersFor(shift, ctrl, alt, meta bool) event.Modifiers {
	var mods event.Modifiers
	if shift {
		mods |= event.ModShift
	}
	if ctrl {
		mods |= event.ModCtrl
	}
	if alt {
		mods |= event.ModAlt
	}
	if meta {
		mods |= event.ModMeta
	}
	return mods
}

// placement is the CSS that makes an absolutely positioned child cover r
// inside the surface element whose top-left corner is at origin.
func placement(r geom.Rect, origin geom.Point) map[string]string {
	return map[string]string{
		"position": "absolute",
		"left":     px(r.X - origin.X),
		"top":      px(r.Y - origin.Y),
		"width":    px(max(r.Width, 0)),
		"height":   px(max(r.Height, 0)),
	}
}

// frameStyle places a window frame and stacks it by z. Hidden or empty
// frames are not displayed.
func frameStyle(frame geom.Rect, origin geom.Point, z int, visible bool) map[string]string {
	style := placement(frame, origin)
	style["zIndex"] = strconv.Itoa(z)
	style["display"] = "block"
	if !visible || frame.Empty() {
		style["display"] = "none"
	}
	return style
}

func px(v int) string { return strconv.Itoa(v) + "px" }

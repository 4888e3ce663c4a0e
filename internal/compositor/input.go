package compositor

import (
	"unicode/utf16"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/manip"
	"github.com/1broseidon/wincomp/internal/platform"
)

// HandlePointer routes a mouse pointer event. Pen and touch pointers are
// left to the touch path and native handling.
func (c *Compositor) HandlePointer(ev event.Pointer) bool {
	if ev.PointerType != event.PointerMouse {
		return false
	}

	target := c.pointerTarget(ev.Point)
	if target == nil {
		if ev.Type == event.PointerUp {
			c.surface.ReleasePointerCapture(ev.PointerID)
			c.manip.OnPointerUp(ev)
		}
		return false
	}
	c.lastTarget = target

	inBounds := target.Geometry().Contains(ev.Point)
	if c.mouseInScreen && c.underMouse != target && inBounds {
		local := ev.Point.Sub(target.Geometry().TopLeft())
		c.system.DeliverEnter(target, local, ev.Point)
		c.underMouse = target
	}

	switch ev.Type {
	case event.PointerDown:
		c.surface.SetPointerCapture(ev.PointerID)
		target.RequestActivate()
		c.manip.OnPointerDown(ev, target)
	case event.PointerUp:
		c.surface.ReleasePointerCapture(ev.PointerID)
		c.manip.OnPointerUp(ev)
	case event.PointerMove:
		if ev.Buttons == event.NoButtons {
			c.updateResizeCursor(target, ev.Point)
		}
		c.manip.OnPointerMove(ev)
		if c.manip.Operation() != manip.OperationNone {
			c.scheduler.RequestUpdateAll()
		}
	case event.PointerEnter:
		c.mouseInScreen = true
	case event.PointerLeave:
		c.mouseInScreen = false
	}

	if !inBounds && ev.Buttons == event.NoButtons {
		c.underMouse = nil
		c.system.DeliverLeave(c.lastTarget)
	}

	accepted := c.deliverEventToTarget(ev, target)
	if !accepted && ev.Type == event.PointerDown {
		c.system.CloseAllPopups()
	}
	return accepted
}

// pointerTarget resolves the window for a pointer event: the capture
// window, else the window under the pointer while nothing is being moved
// or resized, else the previous target.
func (c *Compositor) pointerTarget(p geom.Point) platform.Window {
	var target platform.Window
	switch {
	case c.capture != nil:
		target = c.capture
	case c.manip.Operation() == manip.OperationNone:
		target = c.WindowAt(p, c.cfg.HitPadding)
	}
	if target == nil {
		target = c.lastTarget
	}
	return target
}

func (c *Compositor) updateResizeCursor(w platform.Window, p geom.Point) {
	if w.States().Resizable() && w.IsPointOnResizeRegion(p) && !c.system.IsBlocked(w) {
		cursor := platform.CursorForEdges(w.ResizeEdgesAt(p))
		if cursor != w.Cursor() {
			c.resizeCursorShown = true
			c.surface.SetOverrideCursor(cursor)
		}
		return
	}
	if c.resizeCursorShown {
		c.resizeCursorShown = false
		c.surface.ClearOverrideCursor()
	}
}

// deliverEventToTarget synthesizes the toolkit mouse event for ev and hands
// it to target. A nil target only receives a pointer-up, routed to the
// last target.
func (c *Compositor) deliverEventToTarget(ev event.Pointer, target platform.Window) bool {
	point := c.surface.Geometry().Clamp(ev.Point)

	fallback := false
	if target == nil {
		if ev.Type != event.PointerUp || c.lastTarget == nil {
			return false
		}
		target = c.lastTarget
		c.lastTarget = nil
		fallback = true
	}

	area := event.AreaClient
	if !fallback && c.capture == nil && !target.Geometry().Contains(point) {
		if !target.FrameGeometry().Contains(point) {
			return false
		}
		area = event.AreaNonClient
	}

	kind, ok := event.MouseKindFor(ev.Type, area)
	if !ok {
		return false
	}
	return c.system.DeliverMouse(target, event.Mouse{
		Kind:      kind,
		Local:     point.Sub(target.Geometry().TopLeft()),
		Global:    point,
		Button:    ev.Button,
		Buttons:   ev.Buttons,
		Modifiers: ev.Modifiers,
	})
}

// HandleWheel delivers a wheel event to the window under the pointer.
func (c *Compositor) HandleWheel(ev event.Wheel) bool {
	var factor float64
	switch ev.DeltaMode {
	case event.DeltaPixel:
		factor = c.cfg.WheelPixelFactor
	case event.DeltaLine:
		factor = c.cfg.WheelLineFactor
	case event.DeltaPage:
		factor = c.cfg.WheelPageFactor
	}
	// Native deltas point the opposite way of toolkit deltas.
	factor = -factor

	target := c.WindowAt(ev.Point, c.cfg.HitPadding)
	if target == nil {
		return false
	}

	var delta geom.Point
	if ev.DeltaX != 0 {
		delta.X = int(ev.DeltaX * factor)
	}
	if ev.DeltaY != 0 {
		delta.Y = int(ev.DeltaY * factor)
	}
	return c.system.DeliverWheel(target, event.WheelDelivery{
		Local:      ev.Point.Sub(target.Geometry().TopLeft()),
		Global:     ev.Point,
		PixelDelta: delta,
		AngleDelta: delta,
		Modifiers:  ev.Modifiers,
		Inverted:   c.cfg.InvertedScrolling,
	})
}

// HandleTouch delivers one batch of touch points. Each contact is
// hit-tested on its own; the batch goes to the window hit by the last
// contact that hit one.
func (c *Compositor) HandleTouch(ev event.Touch) bool {
	var target platform.Window
	points := make([]event.TouchPoint, 0, len(ev.Contacts))
	area := geom.Rect{Width: c.cfg.TouchAreaSize, Height: c.cfg.TouchAreaSize}

	for _, contact := range ev.Contacts {
		prev, pressed := c.pressedTouches[contact.ID]
		if ev.Phase == event.TouchEnd || ev.Phase == event.TouchCancel {
			delete(c.pressedTouches, contact.ID)
		}

		w := c.WindowAt(contact.Point, c.cfg.HitPadding)
		if w == nil {
			continue
		}
		target = w

		client := w.Geometry()
		local := contact.Point.Sub(client.TopLeft())
		normal := geom.PointF{
			X: ratio(local.X, client.Width),
			Y: ratio(local.Y, client.Height),
		}
		stationary := pressed && prev == normal

		tp := event.TouchPoint{
			ID:             contact.ID,
			Area:           area.CenteredAt(contact.Point),
			NormalPosition: normal,
			Pressure:       c.cfg.TouchPressure,
		}
		switch ev.Phase {
		case event.TouchStart, event.TouchMove:
			switch {
			case ev.Phase == event.TouchStart && !pressed:
				tp.State = event.TouchPressed
			case stationary:
				tp.State = event.TouchStationary
			default:
				tp.State = event.TouchUpdated
			}
			c.pressedTouches[contact.ID] = normal
		case event.TouchEnd, event.TouchCancel:
			tp.State = event.TouchReleased
		}
		points = append(points, tp)
	}

	if target == nil {
		return false
	}
	if ev.Phase == event.TouchCancel {
		return c.system.DeliverTouchCancel(target, ev.Modifiers)
	}
	return c.system.DeliverTouch(target, event.TouchDelivery{Points: points, Modifiers: ev.Modifiers})
}

func ratio(v, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(v) / float64(total)
}

// HandleKey translates a raw key event and delivers it to the focused
// window. The native default is kept whenever the clipboard needs it.
func (c *Compositor) HandleKey(ev event.Key) bool {
	translated := c.keys.TranslateKey(ev)
	translated.Modifiers = ev.Modifiers

	result := platform.ClipboardIgnored
	if c.clipboard != nil {
		result = c.clipboard.ProcessKey(translated)
	}
	if result == platform.ClipboardNativeNeeded {
		return false
	}

	if translated.Text == "" {
		translated.Text = ev.Key
	}
	if utf16Len(translated.Text) > 1 {
		translated.Text = ""
	}

	accepted := c.system.DeliverKey(translated)
	if result == platform.ClipboardNativeWithCopiedData {
		return false
	}
	return accepted
}

// utf16Len counts text the way browsers measure key values, so characters
// outside the basic plane count as two.
func utf16Len(text string) int {
	n := 0
	for _, r := range text {
		n += utf16.RuneLen(r)
	}
	return n
}

// HandleFocus ignores surface focus changes; activation follows the stack.
func (c *Compositor) HandleFocus() bool { return false }

// passthroughKeys is used when no key translator is configured.
type passthroughKeys struct{}

func (passthroughKeys) TranslateKey(ev event.Key) event.KeyDelivery {
	return event.KeyDelivery{Phase: ev.Phase, Key: ev.Code, Modifiers: ev.Modifiers}
}

var _ platform.InputHandler = (*Compositor)(nil)

// DetectInvertedScrolling asks s whether its device inverts wheel deltas.
// Surfaces that cannot tell report false.
func DetectInvertedScrolling(s platform.Surface) bool {
	hint, ok := s.(platform.InvertedScrollingHint)
	return ok && hint.InvertedScrolling()
}

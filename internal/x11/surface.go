package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/host"
	"github.com/1broseidon/wincomp/internal/platform"
)

// Surface colors
const (
	ColorSurfaceBg uint32 = 0x2c3e50
)

const surfaceEventMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange

// SurfaceConfig holds configuration for a Surface.
type SurfaceConfig struct {
	Title  string
	Bounds geom.Rect
	Logger *slog.Logger
}

// Surface is a top-level X window all toolkit windows are composited into.
// X callbacks run on the xevent goroutine and are forwarded to the loop;
// every other method must be called on the loop goroutine.
type Surface struct {
	conn   *Connection
	loop   *host.Loop
	logger *slog.Logger

	win     xproto.Window
	size    geom.Size
	cursors map[platform.Cursor]xproto.Cursor
	damage  func()
	handler platform.InputHandler
}

// NewSurface creates and maps the surface window.
func NewSurface(conn *Connection, loop *host.Loop, cfg SurfaceConfig) (*Surface, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Bounds.Empty() {
		return nil, fmt.Errorf("surface bounds %v are empty", cfg.Bounds)
	}

	xc := conn.XUtil.Conn()
	screen := conn.XUtil.Screen()

	wid, err := xproto.NewWindowId(xc)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = xproto.CreateWindowChecked(
		xc,
		screen.RootDepth,
		wid,
		conn.Root,
		int16(cfg.Bounds.X), int16(cfg.Bounds.Y),
		uint16(cfg.Bounds.Width), uint16(cfg.Bounds.Height),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		// Values follow the mask bit order: back_pixel before event_mask.
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{ColorSurfaceBg, uint32(surfaceEventMask)},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create surface window: %w", err)
	}

	if cfg.Title != "" {
		if err := ewmh.WmNameSet(conn.XUtil, wid, cfg.Title); err != nil {
			logger.Warn("failed to set surface title", "error", err)
		}
	}

	if err := xproto.MapWindowChecked(xc, wid).Check(); err != nil {
		xproto.DestroyWindow(xc, wid)
		return nil, fmt.Errorf("failed to map surface window: %w", err)
	}

	return &Surface{
		conn:    conn,
		loop:    loop,
		logger:  logger,
		win:     wid,
		size:    cfg.Bounds.Size(),
		cursors: make(map[platform.Cursor]xproto.Cursor),
	}, nil
}

// Window returns the X window id of the surface.
func (s *Surface) Window() xproto.Window { return s.win }

// Geometry returns the surface rect. Toolkit windows live in surface-local
// coordinates, so the origin is always zero.
func (s *Surface) Geometry() geom.Rect {
	return geom.Rect{Width: s.size.Width, Height: s.size.Height}
}

// OnDamage registers f to run on the loop whenever part of the surface must
// be repainted (expose or resize).
func (s *Surface) OnDamage(f func()) { s.damage = f }

// InvertedScrolling reports false: core X wheel buttons carry no direction
// hint.
func (s *Surface) InvertedScrolling() bool { return false }

func (s *Surface) RequestFrame(cb func()) platform.FrameID { return s.loop.RequestFrame(cb) }

func (s *Surface) CancelFrame(id platform.FrameID) { s.loop.CancelFrame(id) }

// Subscribe connects every X event callback for the surface window.
func (s *Surface) Subscribe(h platform.InputHandler) {
	s.handler = h
	xu := s.conn.XUtil

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		ptr, wheel, isWheel, ok := pressEvent(ev.Detail, ev.EventX, ev.EventY, ev.State)
		if !ok {
			return
		}
		if isWheel {
			s.loop.Post(func() { h.HandleWheel(wheel) })
			return
		}
		s.loop.Post(func() { h.HandlePointer(ptr) })
	}).Connect(xu, s.win)

	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ptr, ok := releaseEvent(ev.Detail, ev.EventX, ev.EventY, ev.State); ok {
			s.loop.Post(func() { h.HandlePointer(ptr) })
		}
	}).Connect(xu, s.win)

	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		ptr := pointerEvent(event.PointerMove, ev.EventX, ev.EventY, ev.State)
		s.loop.Post(func() { h.HandlePointer(ptr) })
	}).Connect(xu, s.win)

	xevent.EnterNotifyFun(func(_ *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
		ptr := pointerEvent(event.PointerEnter, ev.EventX, ev.EventY, ev.State)
		s.loop.Post(func() { h.HandlePointer(ptr) })
	}).Connect(xu, s.win)

	xevent.LeaveNotifyFun(func(_ *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
		ptr := pointerEvent(event.PointerLeave, ev.EventX, ev.EventY, ev.State)
		s.loop.Post(func() { h.HandlePointer(ptr) })
	}).Connect(xu, s.win)

	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		key := s.keyEvent(xu, event.KeyDown, ev.Detail, ev.State)
		s.loop.Post(func() { h.HandleKey(key) })
	}).Connect(xu, s.win)

	xevent.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		key := s.keyEvent(xu, event.KeyUp, ev.Detail, ev.State)
		s.loop.Post(func() { h.HandleKey(key) })
	}).Connect(xu, s.win)

	xevent.FocusInFun(func(_ *xgbutil.XUtil, _ xevent.FocusInEvent) {
		s.loop.Post(func() { h.HandleFocus() })
	}).Connect(xu, s.win)

	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		// Only the last expose of a series triggers a repaint.
		if ev.Count == 0 {
			s.loop.Post(s.damaged)
		}
	}).Connect(xu, s.win)

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		size := geom.Size{Width: int(ev.Width), Height: int(ev.Height)}
		s.loop.Post(func() {
			if size == s.size {
				return
			}
			s.size = size
			s.damaged()
		})
	}).Connect(xu, s.win)
}

func (s *Surface) keyEvent(xu *xgbutil.XUtil, phase event.KeyPhase, code xproto.Keycode, state uint16) event.Key {
	return event.Key{
		Phase:     phase,
		Key:       keybind.LookupString(xu, state, code),
		Code:      int(code),
		Modifiers: modifiersFromState(state),
	}
}

func (s *Surface) damaged() {
	if s.damage != nil {
		s.damage()
	}
}

// Unsubscribe detaches all X callbacks of the surface window.
func (s *Surface) Unsubscribe() {
	xevent.Detach(s.conn.XUtil, s.win)
	s.handler = nil
}

// SetPointerCapture grabs the pointer so drags keep reporting motion
// outside the surface.
func (s *Surface) SetPointerCapture(pointerID int) {
	reply, err := xproto.GrabPointer(
		s.conn.XUtil.Conn(),
		false,
		s.win,
		uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		s.logger.Debug("pointer grab failed", "pointer", pointerID, "error", err)
		return
	}
	if reply.Status != xproto.GrabStatusSuccess {
		s.logger.Debug("pointer grab refused", "pointer", pointerID, "status", reply.Status)
	}
}

func (s *Surface) ReleasePointerCapture(int) {
	xproto.UngrabPointer(s.conn.XUtil.Conn(), xproto.TimeCurrentTime)
}

// SetOverrideCursor shows c over the whole surface.
func (s *Surface) SetOverrideCursor(c platform.Cursor) {
	cursor, ok := s.cursors[c]
	if !ok {
		var err error
		cursor, err = xcursor.CreateCursor(s.conn.XUtil, glyphFor(c))
		if err != nil {
			s.logger.Debug("failed to create cursor", "cursor", c.String(), "error", err)
			return
		}
		s.cursors[c] = cursor
	}
	xproto.ChangeWindowAttributes(s.conn.XUtil.Conn(), s.win, xproto.CwCursor, []uint32{uint32(cursor)})
}

// ClearOverrideCursor falls back to the parent's cursor.
func (s *Surface) ClearOverrideCursor() {
	xproto.ChangeWindowAttributes(s.conn.XUtil.Conn(), s.win, xproto.CwCursor, []uint32{uint32(xproto.CursorNone)})
}

// Close frees the cursors and destroys the surface window.
func (s *Surface) Close() {
	xc := s.conn.XUtil.Conn()
	for _, cursor := range s.cursors {
		xproto.FreeCursor(xc, cursor)
	}
	clear(s.cursors)
	xevent.Detach(s.conn.XUtil, s.win)
	xproto.DestroyWindow(xc, s.win)
}

// glyphFor maps a cursor shape to its glyph in the X cursor font.
func glyphFor(c platform.Cursor) uint16 {
	switch c {
	case platform.CursorSizeHor:
		return xcursor.SBHDoubleArrow
	case platform.CursorSizeVer:
		return xcursor.SBVDoubleArrow
	case platform.CursorSizeFDiag:
		return xcursor.TopLeftCorner
	case platform.CursorSizeBDiag:
		return xcursor.TopRightCorner
	case platform.CursorMove:
		return xcursor.Fleur
	default:
		return xcursor.LeftPtr
	}
}

func pointAt(x, y int16) geom.Point { return geom.Pt(int(x), int(y)) }

var (
	_ platform.Surface               = (*Surface)(nil)
	_ platform.InvertedScrollingHint = (*Surface)(nil)
)

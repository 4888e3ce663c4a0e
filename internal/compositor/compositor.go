// Package compositor routes native input to the windows composited into
// one surface, and drives their repaints.
package compositor

import (
	"errors"
	"log/slog"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/manip"
	"github.com/1broseidon/wincomp/internal/platform"
	"github.com/1broseidon/wincomp/internal/scheduler"
	"github.com/1broseidon/wincomp/internal/stack"
)

// Config holds the tunables of a compositor. Start from DefaultConfig.
type Config struct {
	// HitPadding widens every frame during pointer, wheel and touch
	// hit-tests so edges stay reachable for resizing.
	HitPadding int
	// ZOrderBase is the z value of the bottom window; each window above
	// it gets the next value.
	ZOrderBase int

	WheelPixelFactor float64
	WheelLineFactor  float64
	WheelPageFactor  float64
	// InvertedScrolling is passed on with every wheel event.
	InvertedScrolling bool

	TouchAreaSize int
	TouchPressure float64

	Logger *slog.Logger
}

// DefaultConfig returns the stock compositor settings.
func DefaultConfig() Config {
	return Config{
		HitPadding:       5,
		ZOrderBase:       3,
		WheelPixelFactor: 1,
		WheelLineFactor:  12,
		WheelPageFactor:  20,
		TouchAreaSize:    8,
		TouchPressure:    1.0,
	}
}

// Compositor owns the window stack of one surface. It is not safe for
// concurrent use; every call must come from the UI thread.
type Compositor struct {
	cfg       Config
	logger    *slog.Logger
	surface   platform.Surface
	system    platform.WindowSystem
	keys      platform.KeyTranslator
	clipboard platform.ClipboardInterceptor

	stack     *stack.Stack
	manip     *manip.Manipulator
	scheduler *scheduler.Scheduler

	enabled   bool
	installed bool

	underMouse        platform.Window
	capture           platform.Window
	lastTarget        platform.Window
	mouseInScreen     bool
	resizeCursorShown bool
	pressedTouches    map[int]geom.PointF
}

// New creates a compositor for surface delivering to system. keys and
// clipboard may be nil: raw keys are then passed through untranslated and
// no clipboard shortcuts are intercepted.
func New(cfg Config, surface platform.Surface, system platform.WindowSystem, keys platform.KeyTranslator, clipboard platform.ClipboardInterceptor) (*Compositor, error) {
	if surface == nil {
		return nil, errors.New("compositor requires a surface")
	}
	if system == nil {
		return nil, errors.New("compositor requires a window system")
	}

	def := DefaultConfig()
	if cfg.WheelPixelFactor == 0 {
		cfg.WheelPixelFactor = def.WheelPixelFactor
	}
	if cfg.WheelLineFactor == 0 {
		cfg.WheelLineFactor = def.WheelLineFactor
	}
	if cfg.WheelPageFactor == 0 {
		cfg.WheelPageFactor = def.WheelPageFactor
	}
	if cfg.TouchAreaSize <= 0 {
		cfg.TouchAreaSize = def.TouchAreaSize
	}
	if cfg.TouchPressure <= 0 {
		cfg.TouchPressure = def.TouchPressure
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if keys == nil {
		keys = passthroughKeys{}
	}

	c := &Compositor{
		cfg:            cfg,
		logger:         logger,
		surface:        surface,
		system:         system,
		keys:           keys,
		clipboard:      clipboard,
		enabled:        true,
		pressedTouches: make(map[int]geom.PointF),
	}
	c.stack = stack.New(c.onStackChanged)
	c.manip = manip.New(screen{c}, logger)
	c.scheduler = scheduler.New(surface, frameTarget{c}, logger)
	return c, nil
}

// Install subscribes the compositor to the surface's native input.
func (c *Compositor) Install() {
	if c.installed {
		return
	}
	c.surface.Subscribe(c)
	c.installed = true
	c.logger.Debug("compositor installed", "surface", c.surface.Geometry())
}

// Destroy cancels the pending frame, unsubscribes from native input and
// drops every window reference. The compositor paints nothing afterwards.
func (c *Compositor) Destroy() {
	c.scheduler.Cancel()
	if c.installed {
		c.surface.Unsubscribe()
		c.installed = false
	}
	c.manip.Cancel()
	c.underMouse = nil
	c.capture = nil
	c.lastTarget = nil
	c.enabled = false
	clear(c.pressedTouches)
}

// SetEnabled turns painting on or off.
func (c *Compositor) SetEnabled(enabled bool) { c.enabled = enabled }

// Enabled reports whether frames are painted.
func (c *Compositor) Enabled() bool { return c.enabled }

// AddWindow puts w on top of the stack and asks for its activation.
func (c *Compositor) AddWindow(w platform.Window) {
	c.stack.Push(w)
	c.stack.Top().RequestActivate()
}

// RemoveWindow takes w out of the stack, drops every reference to it and
// asks for activation of the new top window.
func (c *Compositor) RemoveWindow(w platform.Window) {
	c.scheduler.Forget(w)
	c.stack.Remove(w)
	if c.underMouse == w {
		c.underMouse = nil
	}
	if c.capture == w {
		c.capture = nil
	}
	if c.lastTarget == w {
		c.lastTarget = nil
	}
	c.manip.Release(w)
	if top := c.stack.Top(); top != nil {
		top.RequestActivate()
	}
}

// Raise moves w to the top. w must be in the stack.
func (c *Compositor) Raise(w platform.Window) { c.stack.Raise(w) }

// Lower moves w to the bottom. w must be in the stack.
func (c *Compositor) Lower(w platform.Window) { c.stack.Lower(w) }

// Windows returns the composited windows front to back.
func (c *Compositor) Windows() []platform.Window { return c.stack.Windows() }

// KeyWindow returns the window that receives keyboard input: the top one.
func (c *Compositor) KeyWindow() platform.Window { return c.stack.Top() }

// Screen returns the geometry of the hosting surface.
func (c *Compositor) Screen() geom.Rect { return c.surface.Geometry() }

// WindowAt returns the frontmost visible window whose frame, grown by
// padding on every side, contains p.
func (c *Compositor) WindowAt(p geom.Point, padding int) platform.Window {
	for _, w := range c.stack.All() {
		if w.Visible() && w.FrameGeometry().Expanded(padding).Contains(p) {
			return w
		}
	}
	return nil
}

// Operation returns the kind of the active move or resize.
func (c *Compositor) Operation() manip.Operation { return c.manip.Operation() }

// StartResize begins a resize of the window under the last pointer
// position. It panics when a move or resize is already active.
func (c *Compositor) StartResize(edges geom.Edges) { c.manip.StartResize(edges) }

// SetCapture routes every pointer event to w until ReleaseCapture. w must
// be in the stack.
func (c *Compositor) SetCapture(w platform.Window) {
	if !c.stack.Contains(w) {
		panic("compositor: capture of a window that is not in the stack")
	}
	c.capture = w
}

// ReleaseCapture ends an explicit capture.
func (c *Compositor) ReleaseCapture() { c.capture = nil }

// Capture returns the window holding explicit pointer capture, or nil.
func (c *Compositor) Capture() platform.Window { return c.capture }

// RequestUpdateAll repaints every window on the next frame.
func (c *Compositor) RequestUpdateAll() { c.scheduler.RequestUpdateAll() }

// RequestUpdate repaints w on the next frame.
func (c *Compositor) RequestUpdate(w platform.Window, t scheduler.DeliveryType) {
	c.scheduler.RequestUpdate(w, t)
}

// Flush schedules presentation of new backing-store content of w.
func (c *Compositor) Flush(w platform.Window) { c.scheduler.Flush(w) }

// onStackChanged renumbers z-orders back to front after every reorder and
// moves the active flag when the top window changed.
func (c *Compositor) onStackChanged(topChanged bool) {
	z := c.cfg.ZOrderBase
	for _, w := range c.stack.Backward() {
		w.SetZOrder(z)
		z++
	}
	if !topChanged {
		return
	}
	for i, w := range c.stack.All() {
		w.SetActive(i == 0)
	}
}

// screen is the compositor as seen by the manipulation state machine.
type screen struct{ c *Compositor }

func (s screen) Geometry() geom.Rect { return s.c.surface.Geometry() }

func (s screen) WindowAt(p geom.Point, padding int) platform.Window {
	return s.c.WindowAt(p, padding)
}

func (s screen) SetPointerCapture(id int) { s.c.surface.SetPointerCapture(id) }

func (s screen) IsBlocked(w platform.Window) bool { return s.c.system.IsBlocked(w) }

// frameTarget is the compositor as seen by the update scheduler.
type frameTarget struct{ c *Compositor }

func (t frameTarget) Windows() []platform.Window { return t.c.stack.Windows() }

func (t frameTarget) DeliverUpdate(w platform.Window, kind scheduler.DeliveryType) {
	if kind == scheduler.UpdateRequestDelivery {
		t.c.system.DeliverUpdateRequest(w)
		return
	}
	t.c.system.DeliverExpose(w, geom.Rect{Width: w.Geometry().Width, Height: w.Geometry().Height})
}

func (t frameTarget) Paint(all bool, windows []platform.Window) {
	c := t.c
	if !c.enabled || c.stack.Empty() {
		return
	}
	if all {
		for _, w := range c.stack.Backward() {
			w.Paint()
		}
		return
	}
	for _, w := range windows {
		if c.stack.Contains(w) {
			w.Paint()
		}
	}
}

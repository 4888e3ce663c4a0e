package toolkit_test

import (
	"testing"

	"github.com/1broseidon/wincomp/internal/compositor"
	"github.com/1broseidon/wincomp/internal/config"
	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/manip"
	"github.com/1broseidon/wincomp/internal/platform/platformtest"
	"github.com/1broseidon/wincomp/internal/toolkit"
)

type scene struct {
	c       *compositor.Compositor
	system  *toolkit.System
	surface *platformtest.Surface
	windows []*toolkit.Window
}

func newScene(t *testing.T, specs ...config.WindowSpec) *scene {
	t.Helper()
	surface := platformtest.NewSurface(geom.R(0, 0, 1280, 800))
	system := toolkit.NewSystem(nil)
	c, err := compositor.New(compositor.DefaultConfig(), surface, system, nil, nil)
	if err != nil {
		t.Fatalf("compositor.New() error = %v", err)
	}
	c.Install()

	ws := toolkit.FromScene(system, specs)
	for _, w := range ws {
		w.SetUpdater(c)
		c.AddWindow(w)
	}
	return &scene{c: c, system: system, surface: surface, windows: ws}
}

func lastKind(w *toolkit.Window) string {
	events := w.Events()
	if len(events) == 0 {
		return ""
	}
	return events[len(events)-1].Kind
}

func TestSceneActivation(t *testing.T) {
	s := newScene(t,
		config.WindowSpec{Title: "a", X: 40, Y: 60, Width: 300, Height: 200},
		config.WindowSpec{Title: "b", X: 400, Y: 60, Width: 300, Height: 200},
	)
	a, b := s.windows[0], s.windows[1]

	if s.system.Focus() != b || !b.Active() || a.Active() {
		t.Fatalf("last added window should be focused and active")
	}

	// Click into a's client area.
	s.c.HandlePointer(event.Pointer{
		Type: event.PointerDown, PointerType: event.PointerMouse, PointerID: 1,
		Point: geom.Pt(100, 100), Button: event.ButtonLeft, Buttons: event.Buttons(event.ButtonLeft),
	})
	if s.system.Focus() != a {
		t.Fatalf("pointer-down did not focus a")
	}
	if lastKind(a) != "mouse" {
		t.Fatalf("a did not receive the press")
	}
	if s.c.KeyWindow() != a || !a.Active() || b.Active() || a.Z() <= b.Z() {
		t.Fatalf("pointer-down did not bring a to the front: key window %v, a active %v, b active %v",
			s.c.KeyWindow(), a.Active(), b.Active())
	}

	s.surface.Tick()
	if a.Paints() != 1 || b.Paints() != 1 {
		t.Fatalf("paints after activation = %d/%d, want 1/1", a.Paints(), b.Paints())
	}
}

func TestSceneModalBlocksActivation(t *testing.T) {
	s := newScene(t,
		config.WindowSpec{Title: "a", X: 40, Y: 60, Width: 300, Height: 200},
		config.WindowSpec{Title: "b", X: 400, Y: 60, Width: 300, Height: 200},
	)
	a, b := s.windows[0], s.windows[1]
	s.system.SetModal(b)

	s.c.HandlePointer(event.Pointer{
		Type: event.PointerDown, PointerType: event.PointerMouse, PointerID: 1,
		Point: geom.Pt(100, 100), Button: event.ButtonLeft, Buttons: event.Buttons(event.ButtonLeft),
	})
	if s.c.KeyWindow() != b || a.Active() || !b.Active() {
		t.Fatalf("blocked window was raised: key window %v", s.c.KeyWindow())
	}
	if s.system.Focus() != b {
		t.Fatalf("focus = %v, want the modal window", s.system.Focus())
	}
}

func TestSceneTitleDrag(t *testing.T) {
	s := newScene(t, config.WindowSpec{Title: "a", X: 100, Y: 100, Width: 300, Height: 200})
	a := s.windows[0]

	press := func(typ event.Type, x, y int, buttons event.Buttons) {
		s.c.HandlePointer(event.Pointer{
			Type: typ, PointerType: event.PointerMouse, PointerID: 1,
			Point: geom.Pt(x, y), Button: event.ButtonLeft, Buttons: buttons,
		})
	}
	press(event.PointerDown, 200, 85, event.Buttons(event.ButtonLeft))
	if s.c.Operation() != manip.OperationMove {
		t.Fatalf("Operation() = %v, want move", s.c.Operation())
	}
	press(event.PointerMove, 210, 90, event.Buttons(event.ButtonLeft))
	press(event.PointerUp, 210, 90, event.NoButtons)

	if want := geom.R(110, 105, 300, 200); a.Geometry() != want {
		t.Fatalf("geometry = %v, want %v", a.Geometry(), want)
	}

	s.surface.Tick()
	if a.Paints() != 1 {
		t.Fatalf("moved window painted %d times, want 1", a.Paints())
	}
}

func TestSceneUpdateDelivery(t *testing.T) {
	s := newScene(t,
		config.WindowSpec{Title: "a", X: 40, Y: 60, Width: 300, Height: 200},
		config.WindowSpec{Title: "b", X: 400, Y: 60, Width: 300, Height: 200},
	)
	a, b := s.windows[0], s.windows[1]

	a.RequestUpdate()
	a.Flush()
	s.surface.Tick()
	if lastKind(a) != "update-request" || a.Paints() != 1 || b.Paints() != 0 {
		t.Fatalf("a: last %q paints %d, b paints %d", lastKind(a), a.Paints(), b.Paints())
	}
	// The flush made while delivering is folded into that frame.
	if s.surface.Pending() != 0 {
		t.Fatalf("delivery scheduled another frame")
	}

	s.c.RequestUpdateAll()
	s.surface.Tick()
	if lastKind(a) != "expose" || lastKind(b) != "expose" {
		t.Fatalf("update-all delivered %q/%q, want expose", lastKind(a), lastKind(b))
	}
	if a.Paints() != 2 || b.Paints() != 1 {
		t.Fatalf("paints = %d/%d, want 2/1", a.Paints(), b.Paints())
	}
}

func TestSceneRejectedPressClosesPopups(t *testing.T) {
	s := newScene(t, config.WindowSpec{Title: "a", X: 100, Y: 100, Width: 300, Height: 200})
	menu := toolkit.NewWindow(toolkit.Options{Title: "menu", Geometry: geom.R(600, 100, 100, 100)})
	s.system.Add(menu)
	s.system.OpenPopup(menu)
	s.system.SetAccept(func(w *toolkit.Window, kind string) bool { return kind != "mouse" })

	s.c.HandlePointer(event.Pointer{
		Type: event.PointerDown, PointerType: event.PointerMouse, PointerID: 1,
		Point: geom.Pt(200, 200), Button: event.ButtonLeft, Buttons: event.Buttons(event.ButtonLeft),
	})
	if menu.Visible() || len(s.system.Popups()) != 0 {
		t.Fatalf("rejected press left the popup open")
	}
}

package compositor

import (
	"reflect"
	"testing"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/manip"
	"github.com/1broseidon/wincomp/internal/platform"
	"github.com/1broseidon/wincomp/internal/platform/platformtest"
	"github.com/1broseidon/wincomp/internal/scheduler"
)

type fixture struct {
	c       *Compositor
	surface *platformtest.Surface
	system  *platformtest.System
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	surface := platformtest.NewSurface(geom.R(0, 0, 800, 600))
	system := platformtest.NewSystem()
	c, err := New(DefaultConfig(), surface, system, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.Install()
	return &fixture{c: c, surface: surface, system: system}
}

func (f *fixture) add(name string, client geom.Rect) *platformtest.Window {
	w := platformtest.NewWindow(name, client)
	f.c.AddWindow(w)
	return w
}

func mouse(typ event.Type, x, y int, button event.Button, buttons event.Buttons) event.Pointer {
	return event.Pointer{
		Type:        typ,
		PointerType: event.PointerMouse,
		PointerID:   1,
		Point:       geom.Pt(x, y),
		Button:      button,
		Buttons:     buttons,
	}
}

func names(ws []platform.Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.(*platformtest.Window).Name
	}
	return out
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(DefaultConfig(), nil, platformtest.NewSystem(), nil, nil); err == nil {
		t.Errorf("New() with nil surface succeeded")
	}
	if _, err := New(DefaultConfig(), platformtest.NewSurface(geom.R(0, 0, 1, 1)), nil, nil, nil); err == nil {
		t.Errorf("New() with nil window system succeeded")
	}
}

func TestStackOrderZAndActivation(t *testing.T) {
	f := newFixture(t)
	a := f.add("A", geom.R(10, 30, 100, 100))
	b := f.add("B", geom.R(20, 40, 100, 100))
	c := f.add("C", geom.R(30, 50, 100, 100))

	if got, want := names(f.c.Windows()), []string{"C", "B", "A"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Windows() = %v, want %v", got, want)
	}
	if a.Z != 3 || b.Z != 4 || c.Z != 5 {
		t.Fatalf("z = A:%d B:%d C:%d, want 3 4 5", a.Z, b.Z, c.Z)
	}
	if !c.Active || a.Active || b.Active {
		t.Fatalf("only C should be active")
	}

	f.c.Raise(a)
	if got, want := names(f.c.Windows()), []string{"A", "C", "B"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after Raise(A) Windows() = %v, want %v", got, want)
	}
	if f.c.KeyWindow() != a {
		t.Fatalf("KeyWindow() = %v, want A", f.c.KeyWindow())
	}
	if a.Z != 5 || c.Z != 4 || b.Z != 3 {
		t.Fatalf("z = A:%d C:%d B:%d, want 5 4 3", a.Z, c.Z, b.Z)
	}
	if !a.Active || c.Active {
		t.Fatalf("A should be the only active window")
	}

	// C sits in the middle; lowering it keeps A on top but renumbers.
	f.c.Lower(c)
	if got, want := names(f.c.Windows()), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after Lower(C) Windows() = %v, want %v", got, want)
	}
	if a.Z != 5 || b.Z != 4 || c.Z != 3 {
		t.Fatalf("z = A:%d B:%d C:%d, want 5 4 3", a.Z, b.Z, c.Z)
	}
	if !a.Active || b.Active || c.Active {
		t.Fatalf("A should stay the only active window")
	}

	seen := map[int]bool{}
	for _, w := range f.c.Windows() {
		z := w.(*platformtest.Window).Z
		if seen[z] {
			t.Fatalf("duplicate z value %d", z)
		}
		seen[z] = true
	}
}

func TestWindowAt(t *testing.T) {
	f := newFixture(t)
	back := f.add("back", geom.R(100, 100, 200, 100))
	front := f.add("front", geom.R(250, 100, 200, 100))

	// back's frame spans x 96..303; front's spans 246..453.
	tests := []struct {
		name    string
		point   geom.Point
		padding int
		want    platform.Window
	}{
		{"inside back only", geom.Pt(150, 150), 0, back},
		{"overlap picks front", geom.Pt(280, 150), 0, front},
		{"padding reaches back", geom.Pt(92, 150), 5, back},
		{"outside without padding", geom.Pt(92, 150), 0, nil},
		{"nowhere", geom.Pt(700, 500), 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.c.WindowAt(tt.point, tt.padding); got != tt.want {
				t.Errorf("WindowAt(%v, %d) = %v, want %v", tt.point, tt.padding, got, tt.want)
			}
		})
	}

	front.Hidden = true
	if got := f.c.WindowAt(geom.Pt(280, 150), 0); got != back {
		t.Errorf("hidden window hit: got %v, want back", got)
	}
}

func TestTitleDragMovesWindow(t *testing.T) {
	f := newFixture(t)
	w := f.add("A", geom.R(100, 100, 200, 100))

	f.c.HandlePointer(mouse(event.PointerDown, 150, 85, event.ButtonLeft, event.Buttons(event.ButtonLeft)))
	if f.c.Operation() != manip.OperationMove {
		t.Fatalf("Operation() = %v, want move", f.c.Operation())
	}
	if !f.surface.Captured[1] {
		t.Fatalf("pointer 1 not captured on pointer-down")
	}

	f.c.HandlePointer(mouse(event.PointerMove, 160, 90, event.ButtonNone, event.Buttons(event.ButtonLeft)))
	if f.surface.Pending() != 1 {
		t.Fatalf("move did not schedule a repaint")
	}

	f.c.HandlePointer(mouse(event.PointerUp, 160, 90, event.ButtonLeft, event.NoButtons))
	if want := geom.R(110, 105, 200, 100); w.Client != want {
		t.Fatalf("geometry = %v, want %v", w.Client, want)
	}
	if f.c.Operation() != manip.OperationNone {
		t.Fatalf("Operation() = %v after pointer-up, want none", f.c.Operation())
	}
	if f.surface.Captured[1] {
		t.Fatalf("pointer 1 still captured after pointer-up")
	}

	last, _ := f.system.Last("mouse")
	if got := last.Event.(event.Mouse).Kind; got != event.NonClientButtonRelease {
		t.Fatalf("last mouse kind = %v, want nc-release", got)
	}
}

func TestRightEdgeResizeClamped(t *testing.T) {
	f := newFixture(t)
	w := f.add("A", geom.R(100, 100, 200, 100))
	w.Min = geom.Size{Width: 60, Height: 50}
	w.Max = geom.Size{Width: 300, Height: platformtest.Unbounded}

	f.c.HandlePointer(mouse(event.PointerDown, 302, 150, event.ButtonLeft, event.Buttons(event.ButtonLeft)))
	if f.c.Operation() != manip.OperationResize {
		t.Fatalf("Operation() = %v, want resize", f.c.Operation())
	}

	f.c.HandlePointer(mouse(event.PointerMove, 452, 150, event.ButtonNone, event.Buttons(event.ButtonLeft)))
	if w.Client.Width != 300 {
		t.Fatalf("width after +150 = %d, want 300", w.Client.Width)
	}
	f.c.HandlePointer(mouse(event.PointerMove, 102, 150, event.ButtonNone, event.Buttons(event.ButtonLeft)))
	if w.Client.Width != 60 {
		t.Fatalf("width after -200 = %d, want 60", w.Client.Width)
	}
	if w.Client.X != 100 || w.Client.Height != 100 {
		t.Fatalf("resize changed more than the width: %v", w.Client)
	}
}

func TestResizeCursor(t *testing.T) {
	f := newFixture(t)
	w := f.add("A", geom.R(100, 100, 200, 100))

	f.c.HandlePointer(mouse(event.PointerMove, 302, 150, event.ButtonNone, event.NoButtons))
	if f.surface.Override != platform.CursorSizeHor {
		t.Fatalf("override cursor = %v, want %v", f.surface.Override, platform.CursorSizeHor)
	}
	f.c.HandlePointer(mouse(event.PointerMove, 200, 150, event.ButtonNone, event.NoButtons))
	if f.surface.Override != platform.CursorDefault {
		t.Fatalf("override cursor = %v after leaving the edge, want default", f.surface.Override)
	}

	w.WinStates = platform.StateMaximized
	f.c.HandlePointer(mouse(event.PointerMove, 302, 150, event.ButtonNone, event.NoButtons))
	if f.surface.Override != platform.CursorDefault {
		t.Fatalf("maximized window shows resize cursor %v", f.surface.Override)
	}
}

func TestEnterLeave(t *testing.T) {
	f := newFixture(t)
	f.add("A", geom.R(100, 100, 200, 100))

	f.c.HandlePointer(mouse(event.PointerEnter, 150, 150, event.ButtonNone, event.NoButtons))
	if len(f.system.Log) != 0 {
		t.Fatalf("surface enter delivered %v", f.system.Kinds())
	}

	f.c.HandlePointer(mouse(event.PointerMove, 150, 150, event.ButtonNone, event.NoButtons))
	f.c.HandlePointer(mouse(event.PointerMove, 160, 150, event.ButtonNone, event.NoButtons))
	f.c.HandlePointer(mouse(event.PointerMove, 500, 500, event.ButtonNone, event.NoButtons))

	want := []string{"enter:A", "mouse:A", "mouse:A", "leave:A"}
	if got := f.system.Kinds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("deliveries = %v, want %v", got, want)
	}
}

func TestNoEnterOutsideScreen(t *testing.T) {
	f := newFixture(t)
	f.add("A", geom.R(100, 100, 200, 100))

	f.c.HandlePointer(mouse(event.PointerMove, 150, 150, event.ButtonNone, event.NoButtons))
	if got, want := f.system.Kinds(), []string{"mouse:A"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deliveries = %v, want %v", got, want)
	}
}

func TestRejectedPointerDownClosesPopups(t *testing.T) {
	f := newFixture(t)
	w := f.add("A", geom.R(100, 100, 200, 100))
	f.system.Reject[w] = true

	if f.c.HandlePointer(mouse(event.PointerDown, 150, 150, event.ButtonLeft, event.Buttons(event.ButtonLeft))) {
		t.Fatalf("rejected pointer-down reported as accepted")
	}
	if f.system.PopupsClosed != 1 {
		t.Fatalf("PopupsClosed = %d, want 1", f.system.PopupsClosed)
	}

	f.c.HandlePointer(mouse(event.PointerMove, 160, 150, event.ButtonNone, event.NoButtons))
	if f.system.PopupsClosed != 1 {
		t.Fatalf("rejected move closed popups")
	}
}

func TestPointerWithoutTarget(t *testing.T) {
	f := newFixture(t)

	f.surface.Captured[1] = true
	if f.c.HandlePointer(mouse(event.PointerUp, 10, 10, event.ButtonLeft, event.NoButtons)) {
		t.Fatalf("pointer-up without windows reported as accepted")
	}
	if f.surface.Captured[1] {
		t.Fatalf("pointer-up without target kept the pointer captured")
	}
	if len(f.system.Log) != 0 {
		t.Fatalf("deliveries = %v, want none", f.system.Kinds())
	}
}

func TestNonMousePointerIgnored(t *testing.T) {
	f := newFixture(t)
	f.add("A", geom.R(100, 100, 200, 100))

	ev := mouse(event.PointerDown, 150, 150, event.ButtonLeft, event.Buttons(event.ButtonLeft))
	ev.PointerType = event.PointerTouch
	if f.c.HandlePointer(ev) {
		t.Fatalf("touch pointer handled")
	}
	if len(f.system.Log) != 0 || len(f.surface.Captured) != 0 {
		t.Fatalf("touch pointer was routed: %v", f.system.Kinds())
	}
}

func TestFocusIgnored(t *testing.T) {
	f := newFixture(t)
	f.add("A", geom.R(100, 100, 200, 100))

	if f.c.HandleFocus() {
		t.Fatalf("focus suppressed default handling")
	}
	if len(f.system.Log) != 0 {
		t.Fatalf("focus delivered events: %v", f.system.Kinds())
	}
}

func TestCaptureRoutesToCaptureWindow(t *testing.T) {
	f := newFixture(t)
	a := f.add("A", geom.R(100, 100, 100, 100))
	f.add("B", geom.R(400, 100, 100, 100))

	f.c.SetCapture(a)
	f.c.HandlePointer(mouse(event.PointerMove, 450, 150, event.ButtonNone, event.Buttons(event.ButtonLeft)))

	last, ok := f.system.Last("mouse")
	if !ok || last.Window != "A" {
		t.Fatalf("move over B delivered to %q, want A", last.Window)
	}
	ev := last.Event.(event.Mouse)
	if ev.Kind != event.MouseMove {
		t.Fatalf("captured delivery kind = %v, want client move", ev.Kind)
	}
	if want := geom.Pt(350, 50); ev.Local != want {
		t.Fatalf("local = %v, want %v", ev.Local, want)
	}

	f.c.ReleaseCapture()
	f.c.HandlePointer(mouse(event.PointerMove, 450, 150, event.ButtonNone, event.NoButtons))
	if last, _ := f.system.Last("mouse"); last.Window != "B" {
		t.Fatalf("after release delivered to %q, want B", last.Window)
	}
}

func TestSetCaptureUnknownPanics(t *testing.T) {
	f := newFixture(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("SetCapture of a foreign window did not panic")
		}
	}()
	f.c.SetCapture(platformtest.NewWindow("stray", geom.R(0, 0, 10, 10)))
}

func TestWheel(t *testing.T) {
	tests := []struct {
		name  string
		mode  event.DeltaMode
		dx    float64
		dy    float64
		delta geom.Point
	}{
		{"pixel", event.DeltaPixel, 0, 3, geom.Pt(0, -3)},
		{"line", event.DeltaLine, 0, 2, geom.Pt(0, -24)},
		{"page", event.DeltaPage, 1, 0, geom.Pt(-20, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.add("A", geom.R(100, 100, 200, 100))

			f.c.HandleWheel(event.Wheel{Point: geom.Pt(150, 150), DeltaMode: tt.mode, DeltaX: tt.dx, DeltaY: tt.dy})
			last, ok := f.system.Last("wheel")
			if !ok {
				t.Fatalf("no wheel delivered")
			}
			ev := last.Event.(event.WheelDelivery)
			if ev.PixelDelta != tt.delta || ev.AngleDelta != tt.delta {
				t.Fatalf("deltas = %v/%v, want %v", ev.PixelDelta, ev.AngleDelta, tt.delta)
			}
			if want := geom.Pt(50, 50); ev.Local != want {
				t.Fatalf("local = %v, want %v", ev.Local, want)
			}
		})
	}
}

func TestWheelMissAndInversion(t *testing.T) {
	surface := platformtest.NewSurface(geom.R(0, 0, 800, 600))
	surface.Inverted = true
	system := platformtest.NewSystem()
	cfg := DefaultConfig()
	cfg.InvertedScrolling = DetectInvertedScrolling(surface)
	c, err := New(cfg, surface, system, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.AddWindow(platformtest.NewWindow("A", geom.R(100, 100, 200, 100)))

	if c.HandleWheel(event.Wheel{Point: geom.Pt(700, 500), DeltaMode: event.DeltaLine, DeltaY: 1}) {
		t.Fatalf("wheel outside every window accepted")
	}
	c.HandleWheel(event.Wheel{Point: geom.Pt(150, 150), DeltaMode: event.DeltaLine, DeltaY: 1})
	last, _ := system.Last("wheel")
	if !last.Event.(event.WheelDelivery).Inverted {
		t.Fatalf("inverted scrolling not passed on")
	}
}

func TestTouchClassification(t *testing.T) {
	f := newFixture(t)
	f.add("A", geom.R(100, 100, 100, 100))

	touch := func(phase event.TouchPhase, x, y int) event.TouchPoint {
		t.Helper()
		f.c.HandleTouch(event.Touch{Phase: phase, Contacts: []event.Contact{{ID: 7, Point: geom.Pt(x, y)}}})
		last, ok := f.system.Last("touch")
		if !ok {
			t.Fatalf("no touch delivered")
		}
		points := last.Event.(event.TouchDelivery).Points
		if len(points) != 1 {
			t.Fatalf("batch has %d points, want 1", len(points))
		}
		return points[0]
	}

	p := touch(event.TouchStart, 150, 150)
	if p.State != event.TouchPressed {
		t.Fatalf("start state = %v, want pressed", p.State)
	}
	if want := geom.R(146, 146, 8, 8); p.Area != want {
		t.Fatalf("area = %v, want %v", p.Area, want)
	}
	if want := (geom.PointF{X: 0.5, Y: 0.5}); p.NormalPosition != want || p.Pressure != 1.0 {
		t.Fatalf("normal = %v pressure = %v", p.NormalPosition, p.Pressure)
	}

	if p := touch(event.TouchMove, 150, 150); p.State != event.TouchStationary {
		t.Fatalf("unmoved contact state = %v, want stationary", p.State)
	}
	if p := touch(event.TouchMove, 160, 150); p.State != event.TouchUpdated {
		t.Fatalf("moved contact state = %v, want updated", p.State)
	}
	if p := touch(event.TouchStart, 170, 150); p.State != event.TouchUpdated {
		t.Fatalf("restarted contact state = %v, want updated", p.State)
	}
	if p := touch(event.TouchEnd, 170, 150); p.State != event.TouchReleased {
		t.Fatalf("end state = %v, want released", p.State)
	}
	if len(f.c.pressedTouches) != 0 {
		t.Fatalf("released contact still registered")
	}
}

func TestTouchCancelAndMiss(t *testing.T) {
	f := newFixture(t)
	f.add("A", geom.R(100, 100, 100, 100))

	if f.c.HandleTouch(event.Touch{Phase: event.TouchStart, Contacts: []event.Contact{{ID: 1, Point: geom.Pt(700, 500)}}}) {
		t.Fatalf("touch outside every window accepted")
	}

	f.c.HandleTouch(event.Touch{Phase: event.TouchStart, Contacts: []event.Contact{{ID: 1, Point: geom.Pt(150, 150)}}})
	f.c.HandleTouch(event.Touch{Phase: event.TouchCancel, Contacts: []event.Contact{{ID: 1, Point: geom.Pt(150, 150)}}})
	if got, want := f.system.Kinds(), []string{"touch:A", "touch-cancel:A"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deliveries = %v, want %v", got, want)
	}
}

func TestTouchReleasedOutsideWindows(t *testing.T) {
	f := newFixture(t)
	f.add("A", geom.R(100, 100, 100, 100))

	f.c.HandleTouch(event.Touch{Phase: event.TouchStart, Contacts: []event.Contact{{ID: 0, Point: geom.Pt(150, 150)}}})
	if f.c.HandleTouch(event.Touch{Phase: event.TouchEnd, Contacts: []event.Contact{{ID: 0, Point: geom.Pt(700, 500)}}}) {
		t.Fatalf("release outside every window accepted")
	}
	if len(f.c.pressedTouches) != 0 {
		t.Fatalf("contact released off-window still registered: %v", f.c.pressedTouches)
	}

	f.c.HandleTouch(event.Touch{Phase: event.TouchStart, Contacts: []event.Contact{{ID: 0, Point: geom.Pt(150, 150)}}})
	last, ok := f.system.Last("touch")
	if !ok {
		t.Fatalf("no touch delivered")
	}
	if p := last.Event.(event.TouchDelivery).Points[0]; p.State != event.TouchPressed {
		t.Fatalf("reused id state = %v, want pressed", p.State)
	}
}

type fixedKeys struct{ text string }

func (k fixedKeys) TranslateKey(ev event.Key) event.KeyDelivery {
	return event.KeyDelivery{Phase: ev.Phase, Key: ev.Code, Text: k.text}
}

type fixedClipboard platform.ClipboardResult

func (c fixedClipboard) ProcessKey(event.KeyDelivery) platform.ClipboardResult {
	return platform.ClipboardResult(c)
}

func TestKeyboard(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		text      string
		clipboard platform.ClipboardResult
		delivered bool
		wantText  string
		want      bool
	}{
		{"raw key fallback", "a", "", platform.ClipboardIgnored, true, "a", true},
		{"translated text kept", "a", "A", platform.ClipboardIgnored, true, "A", true},
		{"named key has no text", "Enter", "", platform.ClipboardIgnored, true, "", true},
		{"accented letter kept", "é", "", platform.ClipboardIgnored, true, "é", true},
		{"surrogate pair dropped", "😀", "", platform.ClipboardIgnored, true, "", true},
		{"clipboard takes the key", "c", "", platform.ClipboardNativeNeeded, false, "", false},
		{"clipboard copies data", "c", "", platform.ClipboardNativeWithCopiedData, true, "c", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := platformtest.NewSurface(geom.R(0, 0, 800, 600))
			system := platformtest.NewSystem()
			c, err := New(DefaultConfig(), surface, system, fixedKeys{text: tt.text}, fixedClipboard(tt.clipboard))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			got := c.HandleKey(event.Key{Phase: event.KeyDown, Key: tt.raw, Modifiers: event.ModCtrl})
			if got != tt.want {
				t.Fatalf("HandleKey() = %v, want %v", got, tt.want)
			}
			last, ok := system.Last("key")
			if ok != tt.delivered {
				t.Fatalf("delivered = %v, want %v", ok, tt.delivered)
			}
			if !ok {
				return
			}
			ev := last.Event.(event.KeyDelivery)
			if ev.Text != tt.wantText {
				t.Fatalf("text = %q, want %q", ev.Text, tt.wantText)
			}
			if ev.Modifiers != event.ModCtrl {
				t.Fatalf("modifiers = %v, want ctrl", ev.Modifiers)
			}
		})
	}
}

func TestRemoveWindowClearsReferences(t *testing.T) {
	f := newFixture(t)
	a := f.add("A", geom.R(100, 100, 100, 100))
	b := f.add("B", geom.R(400, 100, 100, 100))

	f.c.HandlePointer(mouse(event.PointerDown, 450, 85, event.ButtonLeft, event.Buttons(event.ButtonLeft)))
	f.c.SetCapture(b)
	f.c.RequestUpdate(b, scheduler.UpdateRequestDelivery)
	activations := a.Activations

	f.c.RemoveWindow(b)
	if f.c.Capture() != nil {
		t.Fatalf("capture survived removal")
	}
	if f.c.Operation() != manip.OperationNone {
		t.Fatalf("move of removed window still active")
	}
	if f.c.KeyWindow() != a || a.Activations != activations+1 {
		t.Fatalf("new top not activated")
	}

	f.surface.Tick()
	if _, ok := f.system.Last("update-request"); ok {
		t.Fatalf("update delivered to removed window")
	}

	f.c.HandlePointer(mouse(event.PointerMove, 700, 500, event.ButtonNone, event.NoButtons))
	if last, ok := f.system.Last("mouse"); ok && last.Window == "B" {
		t.Fatalf("removed window still used as fallback target")
	}
}

func TestFramePainting(t *testing.T) {
	f := newFixture(t)
	a := f.add("A", geom.R(100, 100, 100, 100))
	b := f.add("B", geom.R(400, 100, 100, 100))

	f.c.RequestUpdate(a, scheduler.ExposeDelivery)
	f.c.SetEnabled(false)
	f.surface.Tick()
	last, ok := f.system.Last("expose")
	if !ok || last.Window != "A" {
		t.Fatalf("expose not delivered to A")
	}
	if want := geom.R(0, 0, 100, 100); last.Event.(geom.Rect) != want {
		t.Fatalf("expose region = %v, want %v", last.Event, want)
	}
	if a.Paints != 0 {
		t.Fatalf("disabled compositor painted")
	}

	f.c.SetEnabled(true)
	f.c.RequestUpdate(a, scheduler.ExposeDelivery)
	f.surface.Tick()
	if a.Paints != 1 || b.Paints != 0 {
		t.Fatalf("paints = A:%d B:%d, want 1 0", a.Paints, b.Paints)
	}

	f.c.RequestUpdateAll()
	f.surface.Tick()
	if a.Paints != 2 || b.Paints != 1 {
		t.Fatalf("paints = A:%d B:%d, want 2 1", a.Paints, b.Paints)
	}
}

func TestInstallDestroy(t *testing.T) {
	f := newFixture(t)
	if f.surface.Handler != f.c {
		t.Fatalf("Install did not subscribe")
	}
	f.add("A", geom.R(100, 100, 100, 100))
	f.c.RequestUpdateAll()

	f.c.Destroy()
	if f.surface.Handler != nil {
		t.Fatalf("Destroy did not unsubscribe")
	}
	if f.surface.Pending() != 0 {
		t.Fatalf("Destroy left a frame scheduled")
	}
	if f.c.Enabled() {
		t.Fatalf("compositor still enabled after Destroy")
	}
}

func TestStartResizeFromLastPointer(t *testing.T) {
	f := newFixture(t)
	w := f.add("A", geom.R(100, 100, 200, 100))

	f.c.HandlePointer(mouse(event.PointerMove, 299, 150, event.ButtonNone, event.NoButtons))
	f.c.StartResize(geom.EdgeRight)
	if f.c.Operation() != manip.OperationResize || !f.surface.Captured[1] {
		t.Fatalf("StartResize did not start a captured resize")
	}
	f.c.HandlePointer(mouse(event.PointerMove, 319, 150, event.ButtonNone, event.Buttons(event.ButtonLeft)))
	if w.Client.Width != 220 {
		t.Fatalf("width = %d, want 220", w.Client.Width)
	}
}

package scene

import (
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/wincomp/internal/config"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/host"
	"github.com/1broseidon/wincomp/internal/platform/platformtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompositorConfigScrollModes(t *testing.T) {
	tests := []struct {
		mode     config.ScrollMode
		hint     bool
		inverted bool
	}{
		{config.ScrollOn, false, true},
		{config.ScrollOff, true, false},
		{config.ScrollAuto, true, true},
		{config.ScrollAuto, false, false},
	}
	for _, tt := range tests {
		cfg := config.DefaultConfig()
		cfg.NaturalScrolling = tt.mode
		surface := platformtest.NewSurface(geom.R(0, 0, 100, 100))
		surface.Inverted = tt.hint

		got := CompositorConfig(cfg, surface, nil)
		if got.InvertedScrolling != tt.inverted {
			t.Errorf("mode %s hint %v: inverted = %v, want %v", tt.mode, tt.hint, got.InvertedScrolling, tt.inverted)
		}
	}
}

func TestCompositorConfigCopiesTuning(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HitPadding = 9
	cfg.ZOrderBase = 10
	cfg.Wheel.LineFactor = 30
	cfg.Touch.AreaSize = 16

	got := CompositorConfig(cfg, platformtest.NewSurface(geom.R(0, 0, 1, 1)), nil)
	if got.HitPadding != 9 || got.ZOrderBase != 10 || got.WheelLineFactor != 30 || got.TouchAreaSize != 16 {
		t.Errorf("CompositorConfig = %+v", got)
	}
}

func TestNewStacksConfiguredWindows(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Windows = []config.WindowSpec{
		{Title: "bottom", X: 10, Y: 40, Width: 200, Height: 100},
		{Title: "top", X: 50, Y: 80, Width: 200, Height: 100},
	}
	loop := host.NewLoop(host.LoopConfig{})
	surface := host.NewHeadless(loop, geom.R(0, 0, 640, 480))

	sc, err := New(cfg, surface, nil, nil, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if surface.Handler() == nil {
		t.Fatal("compositor not subscribed to the surface")
	}

	stacked := sc.Comp.Windows()
	if len(stacked) != 2 || stacked[0] != sc.Windows[1] {
		t.Fatalf("stack = %v, want top first", stacked)
	}
	if !sc.Windows[1].Active() || sc.Windows[0].Active() {
		t.Error("top window should be the only active one")
	}

	loop.Tick()
	for _, w := range sc.Windows {
		if w.Paints() != 1 {
			t.Errorf("%s painted %d times, want 1", w.Title(), w.Paints())
		}
	}
}

func TestToggleAndCycle(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Windows = []config.WindowSpec{
		{Title: "a", X: 10, Y: 10, Width: 100, Height: 100},
		{Title: "b", X: 20, Y: 20, Width: 100, Height: 100},
		{Title: "c", X: 30, Y: 30, Width: 100, Height: 100},
	}
	loop := host.NewLoop(host.LoopConfig{})
	surface := host.NewHeadless(loop, geom.R(0, 0, 640, 480))
	sc, err := New(cfg, surface, nil, nil, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sc.Cycle()
	stacked := sc.Comp.Windows()
	if stacked[0] != sc.Windows[1] || stacked[2] != sc.Windows[2] {
		t.Fatalf("after Cycle stack = %v, want b on top and c at the bottom", stacked)
	}
	if !sc.Windows[1].Active() || sc.Windows[2].Active() {
		t.Error("cycled-in top window should be the only active one")
	}

	if !sc.Comp.Enabled() {
		t.Fatal("compositor should start enabled")
	}
	sc.Toggle()
	if sc.Comp.Enabled() {
		t.Fatal("Toggle should disable the compositor")
	}
	sc.Toggle()
	if !sc.Comp.Enabled() {
		t.Fatal("second Toggle should re-enable the compositor")
	}
}

func TestCycleSingleWindow(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Windows = []config.WindowSpec{{Title: "only", X: 0, Y: 0, Width: 50, Height: 50}}
	loop := host.NewLoop(host.LoopConfig{})
	sc, err := New(cfg, host.NewHeadless(loop, geom.R(0, 0, 100, 100)), nil, nil, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sc.Cycle()
	if ws := sc.Comp.Windows(); len(ws) != 1 || !sc.Windows[0].Active() {
		t.Fatalf("stack = %v after Cycle of a single window", ws)
	}
}

func TestDemoFitsValidation(t *testing.T) {
	for _, bounds := range []geom.Rect{geom.R(0, 0, 1024, 768), geom.R(8, 8, 200, 100), geom.R(0, 0, 0, 0)} {
		cfg := config.DefaultConfig()
		cfg.Windows = Demo(bounds)
		if len(cfg.Windows) != 3 {
			t.Fatalf("Demo(%v) = %d windows, want 3", bounds, len(cfg.Windows))
		}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Demo(%v) does not validate: %v", bounds, err)
		}
		if cfg.Windows[0].X < bounds.X || cfg.Windows[0].Y < bounds.Y {
			t.Errorf("Demo(%v) first window at %d,%d outside bounds", bounds, cfg.Windows[0].X, cfg.Windows[0].Y)
		}
	}
}

// Package scene builds a compositor populated with the configured windows.
// Every host (X11, headless, browser, terminal) goes through it.
package scene

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/wincomp/internal/compositor"
	"github.com/1broseidon/wincomp/internal/config"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
	"github.com/1broseidon/wincomp/internal/toolkit"
)

// Scene is a compositor and the toolkit windows stacked in it.
type Scene struct {
	Comp    *compositor.Compositor
	System  *toolkit.System
	Windows []*toolkit.Window
}

// CompositorConfig maps the file configuration onto the compositor's.
func CompositorConfig(cfg *config.Config, surface platform.Surface, logger *slog.Logger) compositor.Config {
	inverted := false
	switch cfg.NaturalScrolling {
	case config.ScrollOn:
		inverted = true
	case config.ScrollAuto:
		inverted = compositor.DetectInvertedScrolling(surface)
	}
	return compositor.Config{
		HitPadding:        cfg.HitPadding,
		ZOrderBase:        cfg.ZOrderBase,
		WheelPixelFactor:  cfg.Wheel.PixelFactor,
		WheelLineFactor:   cfg.Wheel.LineFactor,
		WheelPageFactor:   cfg.Wheel.PageFactor,
		InvertedScrolling: inverted,
		TouchAreaSize:     cfg.Touch.AreaSize,
		TouchPressure:     cfg.Touch.Pressure,
		Logger:            logger,
	}
}

// New builds the compositor for surface and stacks the configured windows,
// first entry at the bottom. keys and painter may be nil.
func New(cfg *config.Config, surface platform.Surface, keys platform.KeyTranslator, painter toolkit.Painter, logger *slog.Logger) (*Scene, error) {
	if logger == nil {
		logger = slog.Default()
	}
	system := toolkit.NewSystem(logger.With("component", "toolkit"))
	comp, err := compositor.New(CompositorConfig(cfg, surface, logger.With("component", "compositor")), surface, system, keys, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create compositor: %w", err)
	}

	windows := toolkit.FromScene(system, cfg.Windows)
	for _, w := range windows {
		w.SetUpdater(comp)
		if painter != nil {
			w.SetPainter(painter)
		}
		comp.AddWindow(w)
	}
	comp.Install()
	comp.RequestUpdateAll()

	logger.Info("scene ready", "windows", len(windows), "surface", surface.Geometry().String())
	return &Scene{Comp: comp, System: system, Windows: windows}, nil
}

// Toggle switches compositing on or off and repaints the whole surface.
func (s *Scene) Toggle() {
	s.Comp.SetEnabled(!s.Comp.Enabled())
	s.Comp.RequestUpdateAll()
}

// Cycle sends the top window to the bottom of the stack.
func (s *Scene) Cycle() {
	ws := s.Comp.Windows()
	if len(ws) < 2 {
		return
	}
	s.Comp.Lower(ws[0])
	s.Comp.RequestUpdateAll()
}

// Demo lays out three overlapping windows across bounds, for hosts started
// without a configured scene.
func Demo(bounds geom.Rect) []config.WindowSpec {
	w, h := max(bounds.Width/3, 120), max(bounds.Height/3, 90)
	dx, dy := max(bounds.Width/8, 20), max(bounds.Height/8, 20)
	titles := []string{"terminal", "editor", "browser"}
	specs := make([]config.WindowSpec, len(titles))
	for i, title := range titles {
		specs[i] = config.WindowSpec{
			Title:  title,
			X:      bounds.X + dx*(i+1),
			Y:      bounds.Y + dy*(i+1),
			Width:  w,
			Height: h,
		}
	}
	return specs
}

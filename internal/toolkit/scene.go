package toolkit

import (
	"github.com/1broseidon/wincomp/internal/config"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

// FromScene creates one window per scene entry, in order, registered with
// s. The first entry ends up at the bottom once the windows are added to a
// compositor in the returned order.
func FromScene(s *System, specs []config.WindowSpec) []*Window {
	out := make([]*Window, 0, len(specs))
	for _, spec := range specs {
		w := NewWindow(Options{
			Title:    spec.Title,
			Geometry: geom.R(spec.X, spec.Y, spec.Width, spec.Height),
			Min:      geom.Size{Width: spec.MinWidth, Height: spec.MinHeight},
			Max:      geom.Size{Width: spec.MaxWidth, Height: spec.MaxHeight},
			States:   statesFor(spec.State),
			Hidden:   !spec.IsVisible(),
		})
		s.Add(w)
		out = append(out, w)
	}
	return out
}

func statesFor(state config.WindowState) platform.WindowStates {
	switch state {
	case config.WindowMaximized:
		return platform.StateMaximized
	case config.WindowFullScreen:
		return platform.StateFullScreen
	case config.WindowMinimized:
		return platform.StateMinimized
	default:
		return 0
	}
}

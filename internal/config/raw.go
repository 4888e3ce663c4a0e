package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawWheel struct {
	PixelFactor *float64 `yaml:"pixel_factor"`
	LineFactor  *float64 `yaml:"line_factor"`
	PageFactor  *float64 `yaml:"page_factor"`
}

type RawTouch struct {
	AreaSize *int     `yaml:"area_size"`
	Pressure *float64 `yaml:"pressure"`
}

type RawSurface struct {
	Width  *int    `yaml:"width"`
	Height *int    `yaml:"height"`
	Title  *string `yaml:"title"`
}

type RawLogging struct {
	Level *string `yaml:"level"`
}

type RawInspector struct {
	Enabled *bool `yaml:"enabled"`
}

type RawHotkeys struct {
	Toggle *string `yaml:"toggle"`
	Cycle  *string `yaml:"cycle"`
}

// RawConfig is one config file as written: every field is optional so that
// files can be layered over the defaults and over each other.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	HitPadding       *int          `yaml:"hit_padding"`
	ZOrderBase       *int          `yaml:"z_order_base"`
	Wheel            *RawWheel     `yaml:"wheel"`
	NaturalScrolling *ScrollMode   `yaml:"natural_scrolling"`
	Touch            *RawTouch     `yaml:"touch"`
	FrameRate        *int          `yaml:"frame_rate"`
	Display          *string       `yaml:"display"`
	Surface          *RawSurface   `yaml:"surface"`
	Logging          *RawLogging   `yaml:"logging"`
	Inspector        *RawInspector `yaml:"inspector"`
	Hotkeys          *RawHotkeys   `yaml:"hotkeys"`
	// Windows replaces the scene of earlier files as a whole.
	Windows []WindowSpec `yaml:"windows"`
}

func (r RawConfig) merge(overlay RawConfig) RawConfig {
	out := r
	out.Include = nil

	if overlay.HitPadding != nil {
		out.HitPadding = overlay.HitPadding
	}
	if overlay.ZOrderBase != nil {
		out.ZOrderBase = overlay.ZOrderBase
	}
	if overlay.Wheel != nil {
		merged := mergeRawWheel(derefOr(out.Wheel), *overlay.Wheel)
		out.Wheel = &merged
	}
	if overlay.NaturalScrolling != nil {
		out.NaturalScrolling = overlay.NaturalScrolling
	}
	if overlay.Touch != nil {
		merged := mergeRawTouch(derefOr(out.Touch), *overlay.Touch)
		out.Touch = &merged
	}
	if overlay.FrameRate != nil {
		out.FrameRate = overlay.FrameRate
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.Surface != nil {
		merged := mergeRawSurface(derefOr(out.Surface), *overlay.Surface)
		out.Surface = &merged
	}
	if overlay.Logging != nil && overlay.Logging.Level != nil {
		out.Logging = &RawLogging{Level: overlay.Logging.Level}
	}
	if overlay.Inspector != nil && overlay.Inspector.Enabled != nil {
		out.Inspector = &RawInspector{Enabled: overlay.Inspector.Enabled}
	}
	if overlay.Hotkeys != nil {
		merged := mergeRawHotkeys(derefOr(out.Hotkeys), *overlay.Hotkeys)
		out.Hotkeys = &merged
	}
	if overlay.Windows != nil {
		out.Windows = append([]WindowSpec(nil), overlay.Windows...)
	}
	return out
}

func derefOr[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func mergeRawWheel(base RawWheel, overlay RawWheel) RawWheel {
	out := base
	if overlay.PixelFactor != nil {
		out.PixelFactor = overlay.PixelFactor
	}
	if overlay.LineFactor != nil {
		out.LineFactor = overlay.LineFactor
	}
	if overlay.PageFactor != nil {
		out.PageFactor = overlay.PageFactor
	}
	return out
}

func mergeRawTouch(base RawTouch, overlay RawTouch) RawTouch {
	out := base
	if overlay.AreaSize != nil {
		out.AreaSize = overlay.AreaSize
	}
	if overlay.Pressure != nil {
		out.Pressure = overlay.Pressure
	}
	return out
}

func mergeRawSurface(base RawSurface, overlay RawSurface) RawSurface {
	out := base
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.Title != nil {
		out.Title = overlay.Title
	}
	return out
}

func mergeRawHotkeys(base RawHotkeys, overlay RawHotkeys) RawHotkeys {
	out := base
	if overlay.Toggle != nil {
		out.Toggle = overlay.Toggle
	}
	if overlay.Cycle != nil {
		out.Cycle = overlay.Cycle
	}
	return out
}

package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig layers raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.HitPadding != nil {
		cfg.HitPadding = *raw.HitPadding
	}
	if raw.ZOrderBase != nil {
		cfg.ZOrderBase = *raw.ZOrderBase
	}
	if raw.Wheel != nil {
		if raw.Wheel.PixelFactor != nil {
			cfg.Wheel.PixelFactor = *raw.Wheel.PixelFactor
		}
		if raw.Wheel.LineFactor != nil {
			cfg.Wheel.LineFactor = *raw.Wheel.LineFactor
		}
		if raw.Wheel.PageFactor != nil {
			cfg.Wheel.PageFactor = *raw.Wheel.PageFactor
		}
	}
	if raw.NaturalScrolling != nil {
		cfg.NaturalScrolling = *raw.NaturalScrolling
	}
	if raw.Touch != nil {
		if raw.Touch.AreaSize != nil {
			cfg.Touch.AreaSize = *raw.Touch.AreaSize
		}
		if raw.Touch.Pressure != nil {
			cfg.Touch.Pressure = *raw.Touch.Pressure
		}
	}
	if raw.FrameRate != nil {
		cfg.FrameRate = *raw.FrameRate
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Surface != nil {
		if raw.Surface.Width != nil {
			cfg.Surface.Width = *raw.Surface.Width
		}
		if raw.Surface.Height != nil {
			cfg.Surface.Height = *raw.Surface.Height
		}
		if raw.Surface.Title != nil {
			cfg.Surface.Title = *raw.Surface.Title
		}
	}
	if raw.Logging != nil && raw.Logging.Level != nil {
		cfg.Logging.Level = *raw.Logging.Level
	}
	if raw.Inspector != nil && raw.Inspector.Enabled != nil {
		cfg.Inspector.Enabled = *raw.Inspector.Enabled
	}
	if raw.Hotkeys != nil {
		if raw.Hotkeys.Toggle != nil {
			cfg.Hotkeys.Toggle = *raw.Hotkeys.Toggle
		}
		if raw.Hotkeys.Cycle != nil {
			cfg.Hotkeys.Cycle = *raw.Hotkeys.Cycle
		}
	}
	if raw.Windows != nil {
		cfg.Windows = append([]WindowSpec(nil), raw.Windows...)
	}
	return cfg
}

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	hit_padding
//	z_order_base
//	wheel.line_factor
//	natural_scrolling
//	touch.area_size
//	frame_rate
//	display
//	surface.width
//	logging.level
//	inspector.enabled
//	hotkeys.toggle
//	windows
//	windows.<index>
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	if strings.HasPrefix(path, "windows.") {
		if src, ok := res.Sources["windows"]; ok {
			return value, src, nil
		}
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return v, nil
	}

	switch parts[0] {
	case "hit_padding":
		return leaf(cfg.HitPadding)
	case "z_order_base":
		return leaf(cfg.ZOrderBase)
	case "natural_scrolling":
		return leaf(cfg.NaturalScrolling)
	case "frame_rate":
		return leaf(cfg.FrameRate)
	case "display":
		return leaf(cfg.Display)
	case "wheel":
		if len(parts) == 1 {
			return cfg.Wheel, nil
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "pixel_factor":
				return cfg.Wheel.PixelFactor, nil
			case "line_factor":
				return cfg.Wheel.LineFactor, nil
			case "page_factor":
				return cfg.Wheel.PageFactor, nil
			}
		}
	case "touch":
		if len(parts) == 1 {
			return cfg.Touch, nil
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "area_size":
				return cfg.Touch.AreaSize, nil
			case "pressure":
				return cfg.Touch.Pressure, nil
			}
		}
	case "surface":
		if len(parts) == 1 {
			return cfg.Surface, nil
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "width":
				return cfg.Surface.Width, nil
			case "height":
				return cfg.Surface.Height, nil
			case "title":
				return cfg.Surface.Title, nil
			}
		}
	case "logging":
		if len(parts) == 1 {
			return cfg.Logging, nil
		}
		if len(parts) == 2 && parts[1] == "level" {
			return cfg.Logging.Level, nil
		}
	case "inspector":
		if len(parts) == 1 {
			return cfg.Inspector, nil
		}
		if len(parts) == 2 && parts[1] == "enabled" {
			return cfg.Inspector.Enabled, nil
		}
	case "hotkeys":
		if len(parts) == 1 {
			return cfg.Hotkeys, nil
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "toggle":
				return cfg.Hotkeys.Toggle, nil
			case "cycle":
				return cfg.Hotkeys.Cycle, nil
			}
		}
	case "windows":
		if len(parts) == 1 {
			return cfg.Windows, nil
		}
		if len(parts) == 2 {
			i, err := strconv.Atoi(parts[1])
			if err != nil || i < 0 || i >= len(cfg.Windows) {
				return nil, fmt.Errorf("unknown windows entry %q", parts[1])
			}
			return cfg.Windows[i], nil
		}
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

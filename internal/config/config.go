package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ScrollMode selects how naturally inverted wheel deltas are detected.
type ScrollMode string

const (
	ScrollAuto ScrollMode = "auto" // Ask the surface.
	ScrollOn   ScrollMode = "on"
	ScrollOff  ScrollMode = "off"
)

// WindowState is the initial state of a scene window.
type WindowState string

const (
	WindowNormal     WindowState = "normal"
	WindowMaximized  WindowState = "maximized"
	WindowFullScreen WindowState = "fullscreen"
	WindowMinimized  WindowState = "minimized"
)

// WheelConfig scales native wheel deltas per delta mode.
type WheelConfig struct {
	PixelFactor float64 `yaml:"pixel_factor"`
	LineFactor  float64 `yaml:"line_factor"`
	PageFactor  float64 `yaml:"page_factor"`
}

// TouchConfig shapes synthesized touch points.
type TouchConfig struct {
	AreaSize int     `yaml:"area_size"` // Side of the square contact area, in pixels.
	Pressure float64 `yaml:"pressure"`
}

// SurfaceConfig sizes the desktop host window.
type SurfaceConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level"`
}

// HotkeysConfig holds global key bindings for the X11 host, written as
// xgbutil key sequences ("Mod4-Shift-c"). An empty sequence is unbound.
type HotkeysConfig struct {
	Toggle string `yaml:"toggle"` // Enable or disable compositing.
	Cycle  string `yaml:"cycle"`  // Send the top window to the bottom.
}

// InspectorConfig configures the MCP inspector.
type InspectorConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WindowSpec describes one window of the initial scene. Position and size
// are the client area in surface coordinates; a zero maximum is unbounded.
type WindowSpec struct {
	Title     string      `yaml:"title"`
	X         int         `yaml:"x"`
	Y         int         `yaml:"y"`
	Width     int         `yaml:"width"`
	Height    int         `yaml:"height"`
	MinWidth  int         `yaml:"min_width,omitempty"`
	MinHeight int         `yaml:"min_height,omitempty"`
	MaxWidth  int         `yaml:"max_width,omitempty"`
	MaxHeight int         `yaml:"max_height,omitempty"`
	State     WindowState `yaml:"state,omitempty"`
	Visible   *bool       `yaml:"visible,omitempty"`
}

// IsVisible reports whether the window starts shown. Windows are visible
// unless visible: false is set.
func (w WindowSpec) IsVisible() bool {
	return w.Visible == nil || *w.Visible
}

// Config holds all wincomp settings.
type Config struct {
	HitPadding       int             `yaml:"hit_padding"`
	ZOrderBase       int             `yaml:"z_order_base"`
	Wheel            WheelConfig     `yaml:"wheel"`
	NaturalScrolling ScrollMode      `yaml:"natural_scrolling"`
	Touch            TouchConfig     `yaml:"touch"`
	FrameRate        int             `yaml:"frame_rate"`
	Display          string          `yaml:"display,omitempty"`
	Surface          SurfaceConfig   `yaml:"surface"`
	Logging          LoggingConfig   `yaml:"logging"`
	Inspector        InspectorConfig `yaml:"inspector"`
	Hotkeys          HotkeysConfig   `yaml:"hotkeys"`
	Windows          []WindowSpec    `yaml:"windows,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HitPadding: 5,
		ZOrderBase: 3,
		Wheel: WheelConfig{
			PixelFactor: 1,
			LineFactor:  12,
			PageFactor:  20,
		},
		NaturalScrolling: ScrollAuto,
		Touch: TouchConfig{
			AreaSize: 8,
			Pressure: 1.0,
		},
		FrameRate: 60,
		Surface: SurfaceConfig{
			Width:  1280,
			Height: 800,
			Title:  "wincomp",
		},
		Logging: LoggingConfig{Level: "info"},
		Hotkeys: HotkeysConfig{
			Toggle: "Mod4-Shift-c",
			Cycle:  "Mod4-Shift-Tab",
		},
	}
}

// FrameInterval is the time between two display frames.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

// LogLevel returns the slog level for logging.level.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.HitPadding < 0 {
		return &ValidationError{Path: "hit_padding", Err: fmt.Errorf("hit_padding must be >= 0")}
	}
	if c.Wheel.PixelFactor <= 0 {
		return &ValidationError{Path: "wheel.pixel_factor", Err: fmt.Errorf("pixel_factor must be > 0")}
	}
	if c.Wheel.LineFactor <= 0 {
		return &ValidationError{Path: "wheel.line_factor", Err: fmt.Errorf("line_factor must be > 0")}
	}
	if c.Wheel.PageFactor <= 0 {
		return &ValidationError{Path: "wheel.page_factor", Err: fmt.Errorf("page_factor must be > 0")}
	}
	switch c.NaturalScrolling {
	case ScrollAuto, ScrollOn, ScrollOff:
	default:
		return &ValidationError{Path: "natural_scrolling", Err: fmt.Errorf("natural_scrolling must be one of: auto, on, off")}
	}
	if c.Touch.AreaSize <= 0 {
		return &ValidationError{Path: "touch.area_size", Err: fmt.Errorf("area_size must be > 0")}
	}
	if c.Touch.Pressure <= 0 || c.Touch.Pressure > 1 {
		return &ValidationError{Path: "touch.pressure", Err: fmt.Errorf("pressure must be in (0, 1]")}
	}
	if c.FrameRate < 1 || c.FrameRate > 240 {
		return &ValidationError{Path: "frame_rate", Err: fmt.Errorf("frame_rate must be between 1 and 240")}
	}
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return &ValidationError{Path: "surface", Err: fmt.Errorf("surface width and height must be > 0")}
	}
	if !isValidLogLevel(c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}

	titles := make(map[string]struct{}, len(c.Windows))
	for i, w := range c.Windows {
		if err := validateWindow(w); err != nil {
			return &ValidationError{Path: fmt.Sprintf("windows.%d", i), Err: err}
		}
		if _, dup := titles[w.Title]; dup {
			return &ValidationError{Path: fmt.Sprintf("windows.%d", i), Err: fmt.Errorf("duplicate window title %q", w.Title)}
		}
		titles[w.Title] = struct{}{}
	}
	return nil
}

func validateWindow(w WindowSpec) error {
	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("width and height must be > 0")
	}
	if w.MinWidth < 0 || w.MinHeight < 0 || w.MaxWidth < 0 || w.MaxHeight < 0 {
		return fmt.Errorf("size limits must be >= 0")
	}
	if w.MaxWidth > 0 && w.MaxWidth < w.MinWidth {
		return fmt.Errorf("max_width must be >= min_width")
	}
	if w.MaxHeight > 0 && w.MaxHeight < w.MinHeight {
		return fmt.Errorf("max_height must be >= min_height")
	}
	switch w.State {
	case "", WindowNormal, WindowMaximized, WindowFullScreen, WindowMinimized:
	default:
		return fmt.Errorf("state must be one of: normal, maximized, fullscreen, minimized")
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

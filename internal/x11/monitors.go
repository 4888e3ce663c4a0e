package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/wincomp/internal/geom"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds geom.Rect
}

// Monitors lists the active CRTCs reported by RandR.
func (c *Connection) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			Bounds: geom.R(int(info.X), int(info.Y), int(info.Width), int(info.Height)),
		})
	}
	return monitors, nil
}

// PointerMonitor returns the monitor under the pointer, falling back to the
// first monitor.
func (c *Connection) PointerMonitor() (Monitor, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("no monitors found")
	}

	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return monitors[0], nil
	}
	return monitorAt(monitors, geom.Pt(int(pointer.RootX), int(pointer.RootY))), nil
}

func monitorAt(monitors []Monitor, p geom.Point) Monitor {
	for _, m := range monitors {
		if m.Bounds.Contains(p) {
			return m
		}
	}
	return monitors[0]
}

// CenterIn returns a size-sized rect centered on m, shrunk to fit.
func (m Monitor) CenterIn(size geom.Size) geom.Rect {
	w := min(size.Width, m.Bounds.Width)
	h := min(size.Height, m.Bounds.Height)
	return geom.R(m.Bounds.X+(m.Bounds.Width-w)/2, m.Bounds.Y+(m.Bounds.Height-h)/2, w, h)
}

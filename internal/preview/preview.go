// Package preview renders a window stack as text, for terminals and for
// the inspector.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

// Snapshot is the state of one stacked window at a point in time.
type Snapshot struct {
	Index   int                   `json:"index"`
	Title   string                `json:"title"`
	Frame   geom.Rect             `json:"frame"`
	Client  geom.Rect             `json:"client"`
	Z       int                   `json:"z"`
	Active  bool                  `json:"active"`
	Visible bool                  `json:"visible"`
	States  platform.WindowStates `json:"-"`
}

type titled interface{ Title() string }

type zOrdered interface{ Z() int }

type activeReporter interface{ Active() bool }

// Capture snapshots windows, given front to back. Titles, z values and the
// active flag are read when the window exposes them.
func Capture(windows []platform.Window) []Snapshot {
	snaps := make([]Snapshot, 0, len(windows))
	for i, w := range windows {
		s := Snapshot{
			Index:   i,
			Title:   fmt.Sprintf("window %d", i+1),
			Frame:   w.FrameGeometry(),
			Client:  w.Geometry(),
			Visible: w.Visible(),
			States:  w.States(),
		}
		if t, ok := w.(titled); ok && t.Title() != "" {
			s.Title = t.Title()
		}
		if z, ok := w.(zOrdered); ok {
			s.Z = z.Z()
		}
		if a, ok := w.(activeReporter); ok {
			s.Active = a.Active()
		}
		snaps = append(snaps, s)
	}
	return snaps
}

// Render draws the visible windows of snaps, given front to back, onto a
// width x height character canvas that maps to screen. Lower windows are
// drawn first so the top window stays fully visible; frames are labelled
// with their stack position starting at 1.
func Render(snaps []Snapshot, screen geom.Rect, width, height int) []string {
	if width < 5 || height < 3 || screen.Empty() {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i := len(snaps) - 1; i >= 0; i-- {
		if !snaps[i].Visible {
			continue
		}
		drawWindow(canvas, snaps[i], screen, width, height)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawWindow(canvas [][]rune, s Snapshot, screen geom.Rect, canvasW, canvasH int) {
	r := s.Frame.Translated(geom.Pt(-screen.X, -screen.Y))
	x1 := r.X * canvasW / screen.Width
	y1 := r.Y * canvasH / screen.Height
	x2 := (r.X + r.Width) * canvasW / screen.Width
	y2 := (r.Y + r.Height) * canvasH / screen.Height

	// Keep clear of the outer border.
	x1, y1 = max(x1, 1), max(y1, 1)
	x2, y2 = min(x2, canvasW-2), min(y2, canvasH-2)
	if x2 <= x1 || y2 <= y1 {
		return
	}

	horiz, vert := '─', '│'
	corners := [4]rune{'┌', '┐', '└', '┘'}
	if s.Active {
		horiz, vert = '━', '┃'
		corners = [4]rune{'┏', '┓', '┗', '┛'}
	}

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			switch {
			case y == y1 || y == y2:
				canvas[y][x] = horiz
			case x == x1 || x == x2:
				canvas[y][x] = vert
			default:
				canvas[y][x] = ' '
			}
		}
	}
	canvas[y1][x1] = corners[0]
	canvas[y1][x2] = corners[1]
	canvas[y2][x1] = corners[2]
	canvas[y2][x2] = corners[3]

	label := []rune(fmt.Sprintf("%d %s", s.Index+1, s.Title))
	for i, ch := range label {
		x := x1 + 1 + i
		if x >= x2 {
			break
		}
		canvas[y1][x] = ch
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if width < 0 || height < 0 {
		return nil
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	hiddenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	geometryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Summary lists snaps front to back, one styled line per window.
func Summary(snaps []Snapshot) string {
	if len(snaps) == 0 {
		return hiddenStyle.Render("no windows")
	}
	var b strings.Builder
	for i, s := range snaps {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := hiddenStyle.Render("·")
		if s.Active {
			marker = activeStyle.Render("●")
		}
		title := titleStyle.Render(s.Title)
		if !s.Visible {
			title = hiddenStyle.Render(s.Title + " (hidden)")
		}
		fmt.Fprintf(&b, "%d %s %s %s", s.Index+1, marker, title,
			geometryStyle.Render(fmt.Sprintf("%s z=%d%s", s.Client, s.Z, stateSuffix(s.States))))
	}
	return b.String()
}

func stateSuffix(states platform.WindowStates) string {
	var parts []string
	if states.Has(platform.StateMaximized) {
		parts = append(parts, "maximized")
	}
	if states.Has(platform.StateFullScreen) {
		parts = append(parts, "fullscreen")
	}
	if states.Has(platform.StateMinimized) {
		parts = append(parts, "minimized")
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, ",")
}

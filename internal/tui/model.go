// Package tui is a live terminal view of a headless scene. Keys drive the
// compositor the way window-system input would, and every frame the loop is
// ticked so scheduled repaints run before the scene is redrawn.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wincomp/internal/event"
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/host"
	"github.com/1broseidon/wincomp/internal/manip"
	"github.com/1broseidon/wincomp/internal/platform"
	"github.com/1broseidon/wincomp/internal/preview"
	"github.com/1broseidon/wincomp/internal/scene"
	"github.com/1broseidon/wincomp/internal/scheduler"
)

// dragStep is how far one drag key moves a window, in surface pixels.
const dragStep = 20

// dragPointerID identifies the synthetic mouse used for key drags.
const dragPointerID = 1

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	offStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

type frameMsg time.Time

// model is the root bubbletea model of the live view.
type model struct {
	scene    *scene.Scene
	loop     *host.Loop
	interval time.Duration

	selected platform.Window
	status   string

	keys keyMap
	help help.Model

	width  int
	height int
}

func newModel(sc *scene.Scene, loop *host.Loop, interval time.Duration) model {
	m := model{
		scene:    sc,
		loop:     loop,
		interval: interval,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	if ws := sc.Comp.Windows(); len(ws) > 0 {
		m.selected = ws[0]
	}
	return m
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.loop.Tick()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	comp := m.scene.Comp
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Cycle):
		m.scene.Cycle()
		m.status = "cycled"
	case key.Matches(msg, m.keys.Toggle):
		m.scene.Toggle()
		m.status = "compositing off"
		if comp.Enabled() {
			m.status = "compositing on"
		}
	}

	w := m.selected
	if w == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Raise):
		comp.Raise(w)
		comp.RequestUpdateAll()
		m.status = "raised " + titleOf(w)
	case key.Matches(msg, m.keys.Lower):
		comp.Lower(w)
		comp.RequestUpdateAll()
		m.status = "lowered " + titleOf(w)
	case key.Matches(msg, m.keys.Activate):
		w.RequestActivate()
		m.status = "activated " + titleOf(w)
	case key.Matches(msg, m.keys.MoveLeft):
		m.drag(w, -dragStep, 0)
	case key.Matches(msg, m.keys.MoveRight):
		m.drag(w, dragStep, 0)
	case key.Matches(msg, m.keys.MoveUp):
		m.drag(w, 0, -dragStep)
	case key.Matches(msg, m.keys.MoveDown):
		m.drag(w, 0, dragStep)
	case key.Matches(msg, m.keys.Grow):
		m.resize(w, dragStep)
	case key.Matches(msg, m.keys.Shrink):
		m.resize(w, -dragStep)
	case key.Matches(msg, m.keys.Update):
		comp.RequestUpdate(w, scheduler.UpdateRequestDelivery)
		m.status = "update requested for " + titleOf(w)
	}
	return m, nil
}

// moveSelection steps the selection through the stack, front to back,
// wrapping at either end.
func (m *model) moveSelection(delta int) {
	ws := m.scene.Comp.Windows()
	if len(ws) == 0 {
		m.selected = nil
		return
	}
	i := indexOf(ws, m.selected)
	if i < 0 {
		m.selected = ws[0]
		return
	}
	m.selected = ws[(i+delta+len(ws))%len(ws)]
}

// drag moves w by dx, dy with a mouse press on the middle of its title bar,
// a move and a release, so the move goes through normal input routing. w is
// raised first so the press lands on it.
func (m *model) drag(w platform.Window, dx, dy int) {
	comp := m.scene.Comp
	comp.Raise(w)

	f := w.FrameGeometry()
	from := geom.Pt(f.X+f.Width/2, f.Y+f.Height/2)
	if t, ok := w.(interface{ TitleBar() geom.Rect }); ok {
		bar := t.TitleBar()
		from = geom.Pt(bar.X+bar.Width/2, bar.Y+bar.Height/2)
	}
	to := geom.Pt(from.X+dx, from.Y+dy)

	left := event.Buttons(event.ButtonLeft)
	comp.HandlePointer(mouse(event.PointerDown, from, event.ButtonLeft, left))
	comp.HandlePointer(mouse(event.PointerMove, to, event.ButtonNone, left))
	comp.HandlePointer(mouse(event.PointerUp, to, event.ButtonLeft, event.NoButtons))
	m.status = fmt.Sprintf("moved %s to %s", titleOf(w), w.Geometry())
}

// resize grows w by d on its right and bottom edges. The pointer is parked
// on the client area and the resize is started from there, the way a frame
// button or shortcut starts one, then dragged by d and released.
func (m *model) resize(w platform.Window, d int) {
	comp := m.scene.Comp
	if comp.Operation() != manip.OperationNone {
		return
	}
	comp.Raise(w)

	g := w.Geometry()
	from := geom.Pt(g.X+g.Width/2, g.Y+g.Height/2)
	to := geom.Pt(from.X+d, from.Y+d)

	comp.HandlePointer(mouse(event.PointerMove, from, event.ButtonNone, event.NoButtons))
	comp.StartResize(geom.EdgeRight | geom.EdgeBottom)
	comp.HandlePointer(mouse(event.PointerMove, to, event.ButtonNone, event.Buttons(event.ButtonLeft)))
	comp.HandlePointer(mouse(event.PointerUp, to, event.ButtonLeft, event.NoButtons))
	m.status = fmt.Sprintf("resized %s to %s", titleOf(w), w.Geometry())
}

func mouse(typ event.Type, p geom.Point, button event.Button, buttons event.Buttons) event.Pointer {
	return event.Pointer{
		Type:        typ,
		PointerType: event.PointerMouse,
		PointerID:   dragPointerID,
		Point:       p,
		Button:      button,
		Buttons:     buttons,
	}
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	comp := m.scene.Comp
	ws := comp.Windows()
	snaps := preview.Capture(ws)

	header := headerStyle.Render("wincomp")
	state := statusStyle.Render("compositing on")
	if !comp.Enabled() {
		state = offStyle.Render("compositing off")
	}
	header += " " + state
	if op := comp.Operation(); op != manip.OperationNone {
		header += statusStyle.Render(" · " + op.String())
	}
	if m.status != "" {
		header += statusStyle.Render(" · " + m.status)
	}

	helpView := m.help.View(m.keys)
	canvasHeight := m.height - len(snaps) - lipgloss.Height(helpView) - 2
	if canvasHeight < 3 {
		canvasHeight = 3
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, line := range preview.Render(snaps, comp.Screen(), m.width, canvasHeight) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	sel := indexOf(ws, m.selected)
	for i, line := range strings.Split(preview.Summary(snaps), "\n") {
		if i == sel {
			b.WriteString(selectedStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(helpView)
	return b.String()
}

func indexOf(ws []platform.Window, w platform.Window) int {
	for i, x := range ws {
		if x == w {
			return i
		}
	}
	return -1
}

func titleOf(w platform.Window) string {
	if t, ok := w.(interface{ Title() string }); ok {
		return t.Title()
	}
	return "window"
}

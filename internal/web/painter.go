//go:build js && wasm

package web

import (
	"syscall/js"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/toolkit"
)

const (
	activeFrameColor   = "#3c6eb4"
	inactiveFrameColor = "#6b6b6b"
	clientColor        = "#f0f0f0"
	titleTextColor     = "#ffffff"
)

// element is the DOM subtree of one painted window.
type element struct {
	frame  js.Value
	title  js.Value
	client js.Value
}

// Painter draws toolkit windows as absolutely positioned elements inside
// the surface element, one frame element per window.
type Painter struct {
	surface *Surface
	doc     js.Value
	windows map[*toolkit.Window]element
}

// NewPainter paints into s. The surface element becomes the containing
// block of the window elements.
func NewPainter(s *Surface) *Painter {
	s.elem.Get("style").Set("position", "relative")
	s.elem.Get("style").Set("overflow", "hidden")
	return &Painter{
		surface: s,
		doc:     js.Global().Get("document"),
		windows: make(map[*toolkit.Window]element),
	}
}

// PaintWindow updates w's elements to its current geometry, stacking
// position, activation and title.
func (p *Painter) PaintWindow(w *toolkit.Window) {
	el, ok := p.windows[w]
	if !ok {
		el = p.create()
		p.windows[w] = el
	}

	r := p.surface.Geometry()
	origin := geom.Pt(r.X, r.Y)
	frame := w.FrameGeometry()
	setStyle(el.frame, frameStyle(frame, origin, w.Z(), w.Visible()))
	if !w.Visible() || frame.Empty() {
		return
	}

	color := inactiveFrameColor
	if w.Active() {
		color = activeFrameColor
	}
	el.frame.Get("style").Set("background", color)

	// Children are placed relative to the frame element.
	frameOrigin := geom.Pt(frame.X, frame.Y)
	setStyle(el.title, placement(w.TitleBar(), frameOrigin))
	el.title.Set("textContent", w.Title())
	setStyle(el.client, placement(w.Geometry(), frameOrigin))
}

func (p *Painter) create() element {
	el := element{
		frame:  p.doc.Call("createElement", "div"),
		title:  p.doc.Call("createElement", "div"),
		client: p.doc.Call("createElement", "div"),
	}
	el.frame.Set("className", "wincomp-window")
	el.title.Set("className", "wincomp-title")
	el.client.Set("className", "wincomp-client")

	ts := el.title.Get("style")
	ts.Set("color", titleTextColor)
	ts.Set("font", "12px monospace")
	ts.Set("overflow", "hidden")
	ts.Set("whiteSpace", "nowrap")
	ts.Set("pointerEvents", "none")
	cs := el.client.Get("style")
	cs.Set("background", clientColor)
	cs.Set("pointerEvents", "none")
	el.frame.Get("style").Set("pointerEvents", "none")

	el.frame.Call("appendChild", el.title)
	el.frame.Call("appendChild", el.client)
	p.surface.elem.Call("appendChild", el.frame)
	return el
}

func setStyle(v js.Value, style map[string]string) {
	s := v.Get("style")
	for k, val := range style {
		s.Set(k, val)
	}
}

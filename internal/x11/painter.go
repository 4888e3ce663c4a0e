package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/toolkit"
)

// Decoration colors
const (
	ColorActiveFrame   uint32 = 0x3498db // Blue
	ColorInactiveFrame uint32 = 0x7f8c8d // Gray
	ColorClient        uint32 = 0x1f2933 // Dark
	ColorTitleText     uint32 = 0xf5f7fa // Light
	ColorInactiveText  uint32 = 0x95a5a6 // Light gray
)

// titleTextInset is the left padding of the title text inside the title bar.
const titleTextInset = 6

// Painter draws toolkit windows onto a surface with core X requests.
type Painter struct {
	conn   *Connection
	win    xproto.Window
	gc     xproto.Gcontext
	font   xproto.Font
	logger *slog.Logger

	// last is the frame rect each window was painted at, so a moved window
	// can clear the area it left.
	last map[*toolkit.Window]geom.Rect
}

// NewPainter allocates a GC and a fixed-width font on the surface window.
func NewPainter(conn *Connection, s *Surface, logger *slog.Logger) (*Painter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	xc := conn.XUtil.Conn()

	font, err := xproto.NewFontId(xc)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate font id: %w", err)
	}
	opened := false
	for _, name := range []string{"fixed", "9x15", "8x13", "6x13"} {
		if err := xproto.OpenFontChecked(xc, font, uint16(len(name)), name).Check(); err == nil {
			opened = true
			break
		}
	}
	if !opened {
		return nil, fmt.Errorf("failed to open a title font")
	}

	gc, err := xproto.NewGcontextId(xc)
	if err != nil {
		xproto.CloseFont(xc, font)
		return nil, fmt.Errorf("failed to allocate gc id: %w", err)
	}
	err = xproto.CreateGCChecked(
		xc,
		gc,
		xproto.Drawable(s.Window()),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{ColorTitleText, ColorActiveFrame, uint32(font), 0},
	).Check()
	if err != nil {
		xproto.CloseFont(xc, font)
		return nil, fmt.Errorf("failed to create gc: %w", err)
	}

	return &Painter{
		conn:   conn,
		win:    s.Window(),
		gc:     gc,
		font:   font,
		logger: logger,
		last:   make(map[*toolkit.Window]geom.Rect),
	}, nil
}

// PaintWindow draws w's frame, title bar, title text and client area.
func (p *Painter) PaintWindow(w *toolkit.Window) {
	frame := w.FrameGeometry()
	if prev, ok := p.last[w]; ok && prev != frame {
		p.erase(prev)
	}
	if !w.Visible() || frame.Empty() {
		delete(p.last, w)
		return
	}
	p.last[w] = frame

	frameColor, textColor := ColorInactiveFrame, ColorInactiveText
	if w.Active() {
		frameColor, textColor = ColorActiveFrame, ColorTitleText
	}

	p.fill(frame, frameColor)
	p.fill(w.Geometry(), ColorClient)
	p.title(w, frameColor, textColor)
}

// Forget drops the cached frame of a window that left the stack and clears
// the area it covered.
func (p *Painter) Forget(w *toolkit.Window) {
	if prev, ok := p.last[w]; ok {
		p.erase(prev)
		delete(p.last, w)
	}
}

func (p *Painter) fill(r geom.Rect, color uint32) {
	xc := p.conn.XUtil.Conn()
	xproto.ChangeGC(xc, p.gc, xproto.GcForeground, []uint32{color})
	xproto.PolyFillRectangle(xc, xproto.Drawable(p.win), p.gc, []xproto.Rectangle{rectangle(r)})
}

func (p *Painter) title(w *toolkit.Window, bg, fg uint32) {
	text := titleText(w.Title())
	if text == "" {
		return
	}
	bar := w.TitleBar()
	xc := p.conn.XUtil.Conn()
	xproto.ChangeGC(xc, p.gc, xproto.GcForeground|xproto.GcBackground, []uint32{fg, bg})
	// Baseline sits a little below the vertical middle for the fixed fonts.
	x := bar.X + titleTextInset
	y := bar.Y + bar.Height/2 + 5
	xproto.ImageText8(xc, byte(len(text)), xproto.Drawable(p.win), p.gc, int16(x), int16(y), text)
}

// erase repaints r with the surface background and asks the server for an
// expose so windows underneath get repainted.
func (p *Painter) erase(r geom.Rect) {
	r = clipToShort(r)
	if r.Empty() {
		return
	}
	xproto.ClearArea(p.conn.XUtil.Conn(), true, p.win, int16(r.X), int16(r.Y), uint16(r.Width), uint16(r.Height))
}

// Close frees the GC and font.
func (p *Painter) Close() {
	xc := p.conn.XUtil.Conn()
	xproto.FreeGC(xc, p.gc)
	xproto.CloseFont(xc, p.font)
	clear(p.last)
}

// titleText limits a title to what ImageText8 can draw.
func titleText(title string) string {
	const maxLen = 255
	if len(title) > maxLen {
		return title[:maxLen]
	}
	return title
}

func rectangle(r geom.Rect) xproto.Rectangle {
	r = clipToShort(r)
	return xproto.Rectangle{X: int16(r.X), Y: int16(r.Y), Width: uint16(max(r.Width, 0)), Height: uint16(max(r.Height, 0))}
}

// clipToShort clips r to the int16 coordinate space of the X protocol.
func clipToShort(r geom.Rect) geom.Rect {
	const lo, hi = -1 << 15, 1<<15 - 1
	x0, y0 := max(r.X, lo), max(r.Y, lo)
	x1, y1 := min(r.X+r.Width, hi), min(r.Y+r.Height, hi)
	return geom.R(x0, y0, x1-x0, y1-y0)
}

var _ toolkit.Painter = (*Painter)(nil)

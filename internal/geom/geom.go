// Package geom provides the integer screen geometry shared by the
// compositor and its collaborators.
package geom

import "fmt"

// Point is a position in screen or window coordinates.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// PointF is a fractional position, used for normalized touch positions.
type PointF struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Rect describes a rectangular region. The right and bottom edges are
// exclusive: a 10x10 rect at the origin contains (9,9) but not (10,10).
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// R is shorthand for Rect{X: x, Y: y, Width: w, Height: h}.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width - 1 }
func (r Rect) Bottom() int { return r.Y + r.Height - 1 }

func (r Rect) TopLeft() Point { return Point{X: r.X, Y: r.Y} }
func (r Rect) Size() Size     { return Size{Width: r.Width, Height: r.Height} }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return !r.Empty() &&
		p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Adjusted moves each edge of r by the given amounts. Negative left/top and
// positive right/bottom values grow the rect.
func (r Rect) Adjusted(left, top, right, bottom int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left + right,
		Height: r.Height - top + bottom,
	}
}

// Expanded grows r by n pixels on every side.
func (r Rect) Expanded(n int) Rect { return r.Adjusted(-n, -n, n, n) }

// Translated returns r moved by d.
func (r Rect) Translated(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// MovedTo returns r with its top-left corner at p.
func (r Rect) MovedTo(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// CenteredAt returns r moved so that its center is p.
func (r Rect) CenteredAt(p Point) Rect {
	r.X = p.X - r.Width/2
	r.Y = p.Y - r.Height/2
	return r
}

// Clamp returns p clipped to the inclusive bounds of r.
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: max(r.Left(), min(r.Right(), p.X)),
		Y: max(r.Top(), min(r.Bottom(), p.Y)),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

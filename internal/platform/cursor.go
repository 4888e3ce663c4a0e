package platform

import "github.com/1broseidon/wincomp/internal/geom"

// Cursor is a pointer cursor shape.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorSizeHor
	CursorSizeVer
	CursorSizeFDiag
	CursorSizeBDiag
	CursorMove
)

// String returns the CSS cursor name for c.
func (c Cursor) String() string {
	switch c {
	case CursorSizeHor:
		return "ew-resize"
	case CursorSizeVer:
		return "ns-resize"
	case CursorSizeFDiag:
		return "nwse-resize"
	case CursorSizeBDiag:
		return "nesw-resize"
	case CursorMove:
		return "move"
	default:
		return "default"
	}
}

// CursorForEdges returns the resize cursor matching an edge set.
func CursorForEdges(e geom.Edges) Cursor {
	switch {
	case e.Has(geom.EdgeLeft | geom.EdgeTop), e.Has(geom.EdgeRight | geom.EdgeBottom):
		return CursorSizeFDiag
	case e.Has(geom.EdgeRight | geom.EdgeTop), e.Has(geom.EdgeLeft | geom.EdgeBottom):
		return CursorSizeBDiag
	case e.Has(geom.EdgeLeft), e.Has(geom.EdgeRight):
		return CursorSizeHor
	case e.Has(geom.EdgeTop), e.Has(geom.EdgeBottom):
		return CursorSizeVer
	default:
		return CursorDefault
	}
}

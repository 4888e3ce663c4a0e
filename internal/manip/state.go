package manip

import (
	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
)

// Operation is the kind of window manipulation in progress.
type Operation int

const (
	// OperationNone means no window is being manipulated
	OperationNone Operation = iota
	// OperationMove means a window follows the pointer
	OperationMove
	// OperationResize means one or more window edges follow the pointer
	OperationResize
)

// String returns the string representation of the operation
func (o Operation) String() string {
	switch o {
	case OperationNone:
		return "none"
	case OperationMove:
		return "move"
	case OperationResize:
		return "resize"
	default:
		return "unknown"
	}
}

// opData is the operation-specific part of an active operation; exactly one
// of moveData or resizeData.
type opData interface{ isOpData() }

type moveData struct {
	lastPoint geom.Point // screen coordinates, clipped to the screen
}

func (*moveData) isOpData() {}

type resizeData struct {
	edges     geom.Edges
	origin    geom.Point
	initial   geom.Rect
	minShrink geom.Point // minimum size minus size at start, per axis
	maxGrow   geom.Point // maximum size minus size at start, per axis
}

func (*resizeData) isOpData() {}

// newResizeData captures the resize limits of w once; later changes to the
// window's size limits do not affect a running operation.
func newResizeData(w platform.Window, edges geom.Edges, origin geom.Point) *resizeData {
	bounds := w.Geometry()
	minSize := w.MinimumSize()
	maxSize := w.MaximumSize()
	return &resizeData{
		edges:   edges,
		origin:  origin,
		initial: bounds,
		minShrink: geom.Point{
			X: minSize.Width - bounds.Width,
			Y: minSize.Height - bounds.Height,
		},
		maxGrow: geom.Point{
			X: maxSize.Width - bounds.Width,
			Y: maxSize.Height - bounds.Height,
		},
	}
}

// operation is the state of an active manipulation. It exists only while a
// move or resize is in progress.
type operation struct {
	pointerID int
	window    platform.Window
	data      opData
}

func (o *operation) kind() Operation {
	switch o.data.(type) {
	case *moveData:
		return OperationMove
	case *resizeData:
		return OperationResize
	default:
		return OperationNone
	}
}

// lastPointer is the most recent pointer-move seen, tracked even outside
// any window so that StartResize can pick it up.
type lastPointer struct {
	point     geom.Point
	pointerID int
}

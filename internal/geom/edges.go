package geom

import "strings"

// Edges is a set of window edges taking part in a resize.
type Edges uint8

const (
	EdgeLeft Edges = 1 << iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

// EdgesNone is the empty edge set.
const EdgesNone Edges = 0

// Has reports whether all edges in o are set in e.
func (e Edges) Has(o Edges) bool { return o != 0 && e&o == o }

var edgeNames = []struct {
	edge Edges
	name string
}{
	{EdgeLeft, "left"},
	{EdgeTop, "top"},
	{EdgeRight, "right"},
	{EdgeBottom, "bottom"},
}

// String returns the comma-separated edge names, e.g. "left,top".
func (e Edges) String() string {
	if e == EdgesNone {
		return "none"
	}
	var parts []string
	for _, en := range edgeNames {
		if e.Has(en.edge) {
			parts = append(parts, en.name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseEdges parses a comma-separated edge list as produced by String.
func ParseEdges(s string) (Edges, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return EdgesNone, true
	}
	var out Edges
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		found := false
		for _, en := range edgeNames {
			if part == en.name {
				out |= en.edge
				found = true
				break
			}
		}
		if !found {
			return EdgesNone, false
		}
	}
	return out, true
}

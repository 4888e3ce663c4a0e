package mcp

// WindowRef selects a window either by title or by its front-to-back index.
type WindowRef struct {
	Title string `json:"title,omitempty" jsonschema:"Window title (exact match)"`
	Index *int   `json:"index,omitempty" jsonschema:"Front-to-back stack index; 0 is the top window. Used when title is empty."`
}

// WindowInfo describes one stacked window.
type WindowInfo struct {
	Index   int      `json:"index"`
	Title   string   `json:"title"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Z       int      `json:"z"`
	Active  bool     `json:"active"`
	Visible bool     `json:"visible"`
	States  []string `json:"states,omitempty"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// ListWindowsOutput is the output for list_windows, raise_window and
// lower_window.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// WindowAtInput is the input for the window_at tool.
type WindowAtInput struct {
	X       int  `json:"x" jsonschema:"required,Screen x coordinate"`
	Y       int  `json:"y" jsonschema:"required,Screen y coordinate"`
	Padding *int `json:"padding,omitempty" jsonschema:"Extra pixels around each frame that still count as a hit (default: configured hit padding)"`
}

// WindowAtOutput is the output for the window_at tool.
type WindowAtOutput struct {
	Found  bool        `json:"found"`
	Window *WindowInfo `json:"window,omitempty"`
}

// StartResizeInput is the input for the start_resize tool.
type StartResizeInput struct {
	Edges string `json:"edges" jsonschema:"required,Comma-separated edges to drag: left, top, right, bottom"`
}

// StartResizeOutput is the output for the start_resize tool.
type StartResizeOutput struct {
	Edges     string `json:"edges"`
	Operation string `json:"operation"`
}

// RequestUpdateInput is the input for the request_update tool.
type RequestUpdateInput struct {
	Title  string `json:"title,omitempty" jsonschema:"Window title (exact match)"`
	Index  *int   `json:"index,omitempty" jsonschema:"Front-to-back stack index; 0 is the top window"`
	All    bool   `json:"all,omitempty" jsonschema:"Repaint every window; title and index are ignored"`
	Expose bool   `json:"expose,omitempty" jsonschema:"Deliver an expose instead of an update request"`
}

// RequestUpdateOutput is the output for the request_update tool.
type RequestUpdateOutput struct {
	Scheduled []string `json:"scheduled"`
}

// RenderStackInput is the input for the render_stack tool.
type RenderStackInput struct {
	Width  int `json:"width,omitempty" jsonschema:"Canvas width in characters (default: 80)"`
	Height int `json:"height,omitempty" jsonschema:"Canvas height in characters (default: 24)"`
}

// RenderStackOutput is the output for the render_stack tool.
type RenderStackOutput struct {
	Lines []string `json:"lines"`
}

package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/manip"
	"github.com/1broseidon/wincomp/internal/platform"
	"github.com/1broseidon/wincomp/internal/preview"
	"github.com/1broseidon/wincomp/internal/scheduler"
)

const (
	defaultRenderWidth  = 80
	defaultRenderHeight = 24
	maxRenderSize       = 400
)

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the composited windows front to back with title, client geometry, z-order, activation, visibility and window states.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "raise_window",
		Description: "Raise a window to the top of the stack, which also activates it. Select the window by title or by front-to-back index.",
	}, s.handleRaiseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "lower_window",
		Description: "Lower a window to the bottom of the stack. Select the window by title or by front-to-back index.",
	}, s.handleLowerWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "window_at",
		Description: "Hit-test a screen point and return the frontmost visible window whose frame, grown by padding, contains it.",
	}, s.handleWindowAt)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "start_resize",
		Description: "Start an interactive resize of the window under the last pointer position, dragging the given edges. Fails when a move or resize is already active.",
	}, s.handleStartResize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "request_update",
		Description: "Schedule a repaint of one window (by title or index) or of every window on the next frame.",
	}, s.handleRequestUpdate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "render_stack",
		Description: "Render the window stack as ASCII art, top window drawn last. Frames are labelled with their stack position.",
	}, s.handleRenderStack)
}

func (s *Server) handleListWindows(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	var out ListWindowsOutput
	err := s.onLoop(ctx, func() error {
		out = s.listWindows()
		return nil
	})
	return nil, out, err
}

func (s *Server) handleRaiseWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowRef) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	var out ListWindowsOutput
	err := s.onLoop(ctx, func() error {
		w, err := s.resolve(args.Title, args.Index)
		if err != nil {
			return err
		}
		s.comp.Raise(w)
		s.comp.RequestUpdateAll()
		s.logger.Info("window raised", "window", args.Title, "index", args.Index)
		out = s.listWindows()
		return nil
	})
	return nil, out, err
}

func (s *Server) handleLowerWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowRef) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	var out ListWindowsOutput
	err := s.onLoop(ctx, func() error {
		w, err := s.resolve(args.Title, args.Index)
		if err != nil {
			return err
		}
		s.comp.Lower(w)
		s.comp.RequestUpdateAll()
		s.logger.Info("window lowered", "window", args.Title, "index", args.Index)
		out = s.listWindows()
		return nil
	})
	return nil, out, err
}

func (s *Server) handleWindowAt(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowAtInput) (*mcpsdk.CallToolResult, WindowAtOutput, error) {
	padding := s.hitPadding
	if args.Padding != nil {
		if *args.Padding < 0 {
			return nil, WindowAtOutput{}, fmt.Errorf("padding must be >= 0, got %d", *args.Padding)
		}
		padding = *args.Padding
	}

	var out WindowAtOutput
	err := s.onLoop(ctx, func() error {
		w := s.comp.WindowAt(geom.Pt(args.X, args.Y), padding)
		if w == nil {
			return nil
		}
		info := s.listWindows().Windows[indexOf(s.comp.Windows(), w)]
		out = WindowAtOutput{Found: true, Window: &info}
		return nil
	})
	return nil, out, err
}

func (s *Server) handleStartResize(ctx context.Context, _ *mcpsdk.CallToolRequest, args StartResizeInput) (*mcpsdk.CallToolResult, StartResizeOutput, error) {
	edges, ok := geom.ParseEdges(args.Edges)
	if !ok || edges == geom.EdgesNone {
		return nil, StartResizeOutput{}, fmt.Errorf("invalid edges %q: use a comma-separated list of left, top, right, bottom", args.Edges)
	}

	var out StartResizeOutput
	err := s.onLoop(ctx, func() error {
		if op := s.comp.Operation(); op != manip.OperationNone {
			return fmt.Errorf("a %s is already in progress", op)
		}
		s.comp.StartResize(edges)
		out = StartResizeOutput{Edges: edges.String(), Operation: s.comp.Operation().String()}
		return nil
	})
	return nil, out, err
}

func (s *Server) handleRequestUpdate(ctx context.Context, _ *mcpsdk.CallToolRequest, args RequestUpdateInput) (*mcpsdk.CallToolResult, RequestUpdateOutput, error) {
	kind := scheduler.UpdateRequestDelivery
	if args.Expose {
		kind = scheduler.ExposeDelivery
	}

	var out RequestUpdateOutput
	err := s.onLoop(ctx, func() error {
		if args.All {
			s.comp.RequestUpdateAll()
			for _, info := range s.listWindows().Windows {
				out.Scheduled = append(out.Scheduled, info.Title)
			}
			return nil
		}
		w, err := s.resolve(args.Title, args.Index)
		if err != nil {
			return err
		}
		s.comp.RequestUpdate(w, kind)
		out.Scheduled = []string{preview.Capture([]platform.Window{w})[0].Title}
		return nil
	})
	return nil, out, err
}

func (s *Server) handleRenderStack(ctx context.Context, _ *mcpsdk.CallToolRequest, args RenderStackInput) (*mcpsdk.CallToolResult, RenderStackOutput, error) {
	width, height := args.Width, args.Height
	if width <= 0 {
		width = defaultRenderWidth
	}
	if height <= 0 {
		height = defaultRenderHeight
	}
	if width > maxRenderSize || height > maxRenderSize {
		return nil, RenderStackOutput{}, fmt.Errorf("canvas %dx%d exceeds %d characters per side", width, height, maxRenderSize)
	}

	var out RenderStackOutput
	err := s.onLoop(ctx, func() error {
		snaps := preview.Capture(s.comp.Windows())
		out.Lines = preview.Render(snaps, s.comp.Screen(), width, height)
		return nil
	})
	return nil, out, err
}

func (s *Server) listWindows() ListWindowsOutput {
	snaps := preview.Capture(s.comp.Windows())
	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(snaps))}
	for _, snap := range snaps {
		out.Windows = append(out.Windows, windowInfo(snap))
	}
	return out
}

// resolve finds a window by title, falling back to its stack index.
func (s *Server) resolve(title string, index *int) (platform.Window, error) {
	windows := s.comp.Windows()
	if title != "" {
		for i, snap := range preview.Capture(windows) {
			if snap.Title == title {
				return windows[i], nil
			}
		}
		return nil, fmt.Errorf("no window titled %q", title)
	}
	if index == nil {
		return nil, fmt.Errorf("either title or index is required")
	}
	if *index < 0 || *index >= len(windows) {
		return nil, fmt.Errorf("index %d out of range (have %d windows)", *index, len(windows))
	}
	return windows[*index], nil
}

func indexOf(windows []platform.Window, w platform.Window) int {
	for i, candidate := range windows {
		if candidate == w {
			return i
		}
	}
	return -1
}

func windowInfo(snap preview.Snapshot) WindowInfo {
	info := WindowInfo{
		Index:   snap.Index,
		Title:   snap.Title,
		X:       snap.Client.X,
		Y:       snap.Client.Y,
		Width:   snap.Client.Width,
		Height:  snap.Client.Height,
		Z:       snap.Z,
		Active:  snap.Active,
		Visible: snap.Visible,
	}
	if snap.States.Has(platform.StateMaximized) {
		info.States = append(info.States, "maximized")
	}
	if snap.States.Has(platform.StateFullScreen) {
		info.States = append(info.States, "fullscreen")
	}
	if snap.States.Has(platform.StateMinimized) {
		info.States = append(info.States, "minimized")
	}
	return info
}

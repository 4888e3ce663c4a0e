package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/host"
	"github.com/1broseidon/wincomp/internal/preview"
	"github.com/1broseidon/wincomp/internal/scene"
	"github.com/1broseidon/wincomp/internal/tui"
)

func runPreview(args []string) int {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wincomp preview [--path PATH] [--width N] [--height N] [--live [--log FILE]]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the configured scene as ASCII art followed by a window summary.")
		fmt.Fprintln(os.Stderr, "With --live, show it full screen and drive the compositor from the keyboard.")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/wincomp/config.yaml)")
	width := fs.Int("width", 0, "Canvas width (default: terminal width)")
	height := fs.Int("height", 0, "Canvas height (default: half the terminal height)")
	live := fs.Bool("live", false, "Interactive full-screen view")
	logPath := fs.String("log", "", "Log file for --live (default: no logging)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	logger := newLogger(cfg)
	if *live {
		// The live view owns the terminal, so logs go to a file or nowhere.
		var out io.Writer = io.Discard
		if *logPath != "" {
			f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
				return 1
			}
			defer f.Close()
			out = f
		}
		logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	}

	loop := host.NewLoop(host.LoopConfig{FrameInterval: cfg.FrameInterval()})
	surface := host.NewHeadless(loop, geom.Rect{Width: cfg.Surface.Width, Height: cfg.Surface.Height})
	if *live && len(cfg.Windows) == 0 {
		cfg.Windows = scene.Demo(surface.Geometry())
	}
	sc, err := scene.New(cfg, surface, nil, nil, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sc.Comp.Destroy()

	if *live {
		if err := tui.Run(sc, loop, cfg.FrameInterval()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	w, h := canvasSize(*width, *height)

	// The loop never runs here, so the scene is read directly.
	snaps := preview.Capture(sc.Comp.Windows())
	for _, l := range preview.Render(snaps, sc.Comp.Screen(), w, h) {
		fmt.Println(l)
	}
	fmt.Println(preview.Summary(snaps))
	return 0
}

// canvasSize fills unset dimensions from the terminal, falling back to
// 80x24.
func canvasSize(width, height int) (int, int) {
	tw, th := 80, 48
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
			tw, th = w, h
		}
	}
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = max(th/2, 3)
	}
	return width, height
}

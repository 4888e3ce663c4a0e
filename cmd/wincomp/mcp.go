package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/host"
	"github.com/1broseidon/wincomp/internal/mcp"
	"github.com/1broseidon/wincomp/internal/scene"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wincomp mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start a headless compositor and the MCP inspector (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wincomp mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wincomp mcp serve [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the configured scene without a display and serve the inspector")
		fmt.Fprintln(os.Stderr, "on stdio. Designed to be invoked by MCP clients.")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/wincomp/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := res.Config
	logger := newLogger(cfg)

	loop := host.NewLoop(host.LoopConfig{
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger.With("component", "loop"),
	})
	surface := host.NewHeadless(loop, geom.Rect{Width: cfg.Surface.Width, Height: cfg.Surface.Height})
	sc, err := scene.New(cfg, surface, nil, nil, logger)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	defer sc.Comp.Destroy()

	server, err := mcp.NewServer(mcp.Config{
		Compositor: sc.Comp,
		Loop:       loop,
		HitPadding: cfg.HitPadding,
		Logger:     logger.With("component", "mcp"),
	})
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go loop.Run(ctx)

	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return 0
}

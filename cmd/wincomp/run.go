package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/host"
	"github.com/1broseidon/wincomp/internal/hotkeys"
	"github.com/1broseidon/wincomp/internal/mcp"
	"github.com/1broseidon/wincomp/internal/scene"
	"github.com/1broseidon/wincomp/internal/x11"
)

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wincomp run [--path PATH] [--inspect]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open an X11 window and composite the configured scene into it.")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/wincomp/config.yaml)")
	inspect := fs.Bool("inspect", false, "Also serve the MCP inspector on stdio")
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

	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	size := geom.Size{Width: cfg.Surface.Width, Height: cfg.Surface.Height}
	bounds := geom.Rect{Width: size.Width, Height: size.Height}
	if mon, err := conn.PointerMonitor(); err == nil {
		bounds = mon.CenterIn(size)
		logger.Debug("placing surface", "monitor", mon.Name, "bounds", bounds.String())
	} else {
		logger.Warn("monitor lookup failed, placing surface at origin", "error", err)
	}

	loop := host.NewLoop(host.LoopConfig{
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger.With("component", "loop"),
	})

	surface, err := x11.NewSurface(conn, loop, x11.SurfaceConfig{
		Title:  cfg.Surface.Title,
		Bounds: bounds,
		Logger: logger.With("component", "x11"),
	})
	if err != nil {
		log.Fatalf("Failed to create surface: %v", err)
	}
	defer surface.Close()

	painter, err := x11.NewPainter(conn, surface, logger)
	if err != nil {
		log.Fatalf("Failed to create painter: %v", err)
	}
	defer painter.Close()

	sc, err := scene.New(cfg, surface, x11.NewKeys(conn), painter, logger)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	defer sc.Comp.Destroy()
	surface.OnDamage(sc.Comp.RequestUpdateAll)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	keys := hotkeys.NewHandler(conn.XUtil, conn.Root, loop.Post, logger.With("component", "hotkeys"))
	if err := keys.Register(cfg.Hotkeys.Toggle, sc.Toggle); err != nil {
		logger.Warn("toggle hotkey unavailable", "error", err)
	}
	if err := keys.Register(cfg.Hotkeys.Cycle, sc.Cycle); err != nil {
		logger.Warn("cycle hotkey unavailable", "error", err)
	}

	go conn.EventLoop()
	defer conn.Quit()

	if *inspect || cfg.Inspector.Enabled {
		server, err := mcp.NewServer(mcp.Config{
			Compositor: sc.Comp,
			Loop:       loop,
			HitPadding: cfg.HitPadding,
			Logger:     logger.With("component", "mcp"),
		})
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		go func() {
			if err := server.Run(ctx); err != nil {
				logger.Error("MCP server stopped", "error", err)
			}
		}()
	}

	logger.Info("wincomp running", "display", cfg.Display, "windows", len(sc.Windows))
	loop.Run(ctx)
	return 0
}

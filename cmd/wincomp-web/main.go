//go:build js && wasm

// Command wincomp-web runs the compositor inside a browser page. The page
// provides an element with id "wincomp" and may set the global
// wincompConfig to a YAML configuration string.
package main

import (
	"log"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/1broseidon/wincomp/internal/config"
	"github.com/1broseidon/wincomp/internal/scene"
	"github.com/1broseidon/wincomp/internal/web"
)

const elementID = "wincomp"

func main() {
	cfg := config.DefaultConfig()
	if v := js.Global().Get("wincompConfig"); v.Type() == js.TypeString {
		parsed, err := config.Parse([]byte(v.String()))
		if err != nil {
			log.Fatalf("Failed to parse wincompConfig: %v", err)
		}
		cfg = parsed
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	elem := js.Global().Get("document").Call("getElementById", elementID)
	if elem.IsNull() || elem.IsUndefined() {
		log.Fatalf("Failed to find element #%s", elementID)
	}

	surface := web.NewSurface(elem, logger.With("component", "web"))
	if len(cfg.Windows) == 0 {
		cfg.Windows = scene.Demo(surface.Geometry())
	}
	sc, err := scene.New(cfg, surface, nil, web.NewPainter(surface), logger)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	logger.Info("wincomp-web running", "windows", len(sc.Windows))

	// Callbacks keep running on the JS event loop.
	select {}
}

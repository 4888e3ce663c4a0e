// Package mcp serves an inspector for a running compositor over the Model
// Context Protocol. Every tool runs on the compositor's loop.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wincomp/internal/compositor"
)

const (
	ServerName    = "wincomp"
	ServerVersion = "0.1.0"
)

// Runner executes f on the goroutine that owns the compositor.
type Runner interface {
	Do(ctx context.Context, f func()) error
}

// Config holds configuration for a Server.
type Config struct {
	Compositor *compositor.Compositor
	Loop       Runner
	// HitPadding is the window_at padding used when a call gives none.
	HitPadding int
	Logger     *slog.Logger
}

// Server is the MCP inspector server.
type Server struct {
	mcpServer  *mcpsdk.Server
	comp       *compositor.Compositor
	loop       Runner
	hitPadding int
	logger     *slog.Logger
}

// NewServer creates an inspector for cfg.Compositor.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Compositor == nil {
		return nil, errors.New("mcp server requires a compositor")
	}
	if cfg.Loop == nil {
		return nil, errors.New("mcp server requires a loop")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		comp:       cfg.Compositor,
		loop:       cfg.Loop,
		hitPadding: cfg.HitPadding,
		logger:     logger,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// onLoop runs f on the compositor loop and returns its error.
func (s *Server) onLoop(ctx context.Context, f func() error) error {
	var ferr error
	if err := s.loop.Do(ctx, func() { ferr = f() }); err != nil {
		return fmt.Errorf("compositor loop unavailable: %w", err)
	}
	return ferr
}

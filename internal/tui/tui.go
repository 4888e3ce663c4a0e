package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/wincomp/internal/host"
	"github.com/1broseidon/wincomp/internal/scene"
)

// Run shows sc full screen until the user quits. The caller must not run
// loop; the view ticks it once every interval.
func Run(sc *scene.Scene, loop *host.Loop, interval time.Duration) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("live view requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if interval <= 0 {
		interval = time.Second / 60
	}
	if _, err := tea.NewProgram(newModel(sc, loop, interval), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("live view failed: %w", err)
	}
	return nil
}

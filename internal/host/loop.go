// Package host runs the compositor's single UI thread: tasks posted from
// other goroutines and display frame ticks are executed on one goroutine.
package host

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/wincomp/internal/platform"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("host loop stopped")

// LoopConfig holds configuration for a Loop.
type LoopConfig struct {
	FrameInterval time.Duration
	Logger        *slog.Logger
}

// Loop serializes work onto the goroutine calling Run. RequestFrame and
// CancelFrame implement platform.FrameScheduler with requestAnimationFrame
// semantics: callbacks registered before a tick run on that tick, those
// registered while it runs wait for the next one.
type Loop struct {
	interval time.Duration
	logger   *slog.Logger
	tasks    chan func()
	done     chan struct{}

	mu     sync.Mutex
	frames map[platform.FrameID]func()
	order  []platform.FrameID
	nextID platform.FrameID
}

// NewLoop creates a loop with the given configuration.
func NewLoop(cfg LoopConfig) *Loop {
	interval := cfg.FrameInterval
	if interval <= 0 {
		interval = time.Second / 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		interval: interval,
		logger:   logger,
		tasks:    make(chan func(), 256),
		done:     make(chan struct{}),
		frames:   make(map[platform.FrameID]func()),
	}
}

// Post queues f to run on the loop. It never blocks the caller for long:
// once the loop has stopped, f is dropped.
func (l *Loop) Post(f func()) {
	select {
	case l.tasks <- f:
	case <-l.done:
	}
}

// Task states shared between Do and the loop.
const (
	taskQueued int32 = iota
	taskRunning
	taskAbandoned
)

// Do runs f on the loop and waits for it to finish. If ctx ends while the
// task is still queued, f is skipped and ctx's error returned; once f has
// started, Do waits for it so nothing it writes outlives the call.
func (l *Loop) Do(ctx context.Context, f func()) error {
	var state atomic.Int32
	finished := make(chan struct{})
	task := func() {
		if !state.CompareAndSwap(taskQueued, taskRunning) {
			return
		}
		defer close(finished)
		f()
	}
	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	var err error
	select {
	case <-finished:
		return nil
	case <-l.done:
		err = ErrStopped
	case <-ctx.Done():
		err = ctx.Err()
	}
	if state.CompareAndSwap(taskQueued, taskAbandoned) {
		return err
	}
	<-finished
	return nil
}

// RequestFrame registers cb for the next frame tick.
func (l *Loop) RequestFrame(cb func()) platform.FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.frames[l.nextID] = cb
	l.order = append(l.order, l.nextID)
	return l.nextID
}

// CancelFrame drops a registered frame callback.
func (l *Loop) CancelFrame(id platform.FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.frames, id)
}

// Run executes posted tasks and frame ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer close(l.done)

	l.logger.Info("host loop started", "frame_interval", l.interval)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("host loop stopped")
			return
		case f := <-l.tasks:
			f()
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Tick runs every frame callback registered before the call, in
// registration order. Run calls it on every frame; it is exported for
// hosts that drive frames themselves.
func (l *Loop) Tick() {
	l.mu.Lock()
	order := l.order
	frames := l.frames
	l.order = nil
	l.frames = make(map[platform.FrameID]func())
	l.mu.Unlock()

	for _, id := range order {
		if cb, ok := frames[id]; ok {
			cb()
		}
	}
}

var _ platform.FrameScheduler = (*Loop)(nil)

package host

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestTickRunsRegisteredFramesInOrder(t *testing.T) {
	l := NewLoop(LoopConfig{})

	var got []string
	l.RequestFrame(func() { got = append(got, "a") })
	cancelled := l.RequestFrame(func() { got = append(got, "cancelled") })
	l.RequestFrame(func() {
		got = append(got, "b")
		l.RequestFrame(func() { got = append(got, "next") })
	})
	l.CancelFrame(cancelled)

	l.Tick()
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("first tick ran %v, want %v", got, want)
	}

	l.Tick()
	if want := []string{"a", "b", "next"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("second tick ran %v, want %v", got, want)
	}
}

func TestDoRunsOnLoop(t *testing.T) {
	l := NewLoop(LoopConfig{FrameInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(stopped)
	}()

	ran := false
	if err := l.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !ran {
		t.Fatalf("Do returned before running the task")
	}

	framed := make(chan struct{})
	l.Post(func() { l.RequestFrame(func() { close(framed) }) })
	select {
	case <-framed:
	case <-time.After(2 * time.Second):
		t.Fatalf("frame callback never ran")
	}

	cancel()
	<-stopped
	if err := l.Do(context.Background(), func() {}); !errors.Is(err, ErrStopped) {
		t.Fatalf("Do() after stop error = %v, want ErrStopped", err)
	}
}

func TestDoHonorsContext(t *testing.T) {
	l := NewLoop(LoopConfig{})
	for i := 0; i < cap(l.tasks); i++ {
		l.tasks <- func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Do(ctx, func() {}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
}

func TestDoSkipsTaskAbandonedInQueue(t *testing.T) {
	l := NewLoop(LoopConfig{})
	ctx, cancel := context.WithCancel(context.Background())

	ran := false
	result := make(chan error, 1)
	go func() { result <- l.Do(ctx, func() { ran = true }) }()

	task := <-l.tasks
	cancel()
	if err := <-result; !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
	task()
	if ran {
		t.Fatalf("abandoned task ran")
	}
}

func TestDoWaitsForStartedTask(t *testing.T) {
	l := NewLoop(LoopConfig{})
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	value := 0
	result := make(chan error, 1)
	go func() {
		result <- l.Do(ctx, func() {
			close(started)
			<-release
			value = 42
		})
	}()

	task := <-l.tasks
	go task()
	<-started
	cancel()

	select {
	case err := <-result:
		t.Fatalf("Do returned %v while its task was running", err)
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	if err := <-result; err != nil {
		t.Fatalf("Do() error = %v, want nil once the task finished", err)
	}
	if value != 42 {
		t.Fatalf("value = %d, want 42", value)
	}
}

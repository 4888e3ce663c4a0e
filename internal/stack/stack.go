// Package stack keeps the front-to-back z-order of composited windows.
package stack

import (
	"iter"
	"slices"

	"github.com/1broseidon/wincomp/internal/platform"
)

// ChangedFunc is called after every mutation that reordered the stack.
// topChanged reports whether a different window (or none) is now on top.
type ChangedFunc func(topChanged bool)

// Stack is an ordered set of windows; index 0 is the top (front) window.
type Stack struct {
	windows   []platform.Window
	onChanged ChangedFunc
}

// New creates an empty stack. onChanged may be nil.
func New(onChanged ChangedFunc) *Stack {
	return &Stack{onChanged: onChanged}
}

// Push inserts w at the front; it becomes the new top.
func (s *Stack) Push(w platform.Window) {
	s.windows = slices.Insert(s.windows, 0, w)
	s.changed(true)
}

// Remove deletes w if present and reports whether it was.
func (s *Stack) Remove(w platform.Window) bool {
	i := s.Index(w)
	if i < 0 {
		return false
	}
	s.windows = slices.Delete(s.windows, i, i+1)
	s.changed(i == 0)
	return true
}

// Raise moves w to the front. Raising a window that is not in the stack is
// a programming error and panics.
func (s *Stack) Raise(w platform.Window) {
	i := s.mustIndex(w, "raise")
	if i == 0 {
		return
	}
	s.windows = slices.Delete(s.windows, i, i+1)
	s.windows = slices.Insert(s.windows, 0, w)
	s.changed(true)
}

// Lower moves w to the back. Lowering a window that is not in the stack is
// a programming error and panics.
func (s *Stack) Lower(w platform.Window) {
	i := s.mustIndex(w, "lower")
	last := len(s.windows) - 1
	if i == last {
		return
	}
	s.windows = slices.Delete(s.windows, i, i+1)
	s.windows = append(s.windows, w)
	s.changed(i == 0)
}

// Top returns the front window, or nil if the stack is empty.
func (s *Stack) Top() platform.Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[0]
}

func (s *Stack) Len() int    { return len(s.windows) }
func (s *Stack) Empty() bool { return len(s.windows) == 0 }

// Index returns the position of w counted from the front, or -1.
func (s *Stack) Index(w platform.Window) int {
	for i, cur := range s.windows {
		if cur == w {
			return i
		}
	}
	return -1
}

func (s *Stack) Contains(w platform.Window) bool { return s.Index(w) >= 0 }

// Windows returns a front-to-back snapshot.
func (s *Stack) Windows() []platform.Window {
	return slices.Clone(s.windows)
}

// All iterates front to back.
func (s *Stack) All() iter.Seq2[int, platform.Window] {
	return func(yield func(int, platform.Window) bool) {
		for i, w := range s.windows {
			if !yield(i, w) {
				return
			}
		}
	}
}

// Backward iterates back to front, the order windows must paint in.
func (s *Stack) Backward() iter.Seq2[int, platform.Window] {
	return func(yield func(int, platform.Window) bool) {
		for i := len(s.windows) - 1; i >= 0; i-- {
			if !yield(i, s.windows[i]) {
				return
			}
		}
	}
}

func (s *Stack) mustIndex(w platform.Window, op string) int {
	i := s.Index(w)
	if i < 0 {
		panic("stack: " + op + " of a window that is not in the stack")
	}
	return i
}

func (s *Stack) changed(topChanged bool) {
	if s.onChanged != nil {
		s.onChanged(topChanged)
	}
}

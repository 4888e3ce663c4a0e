// Package scheduler coalesces window repaint requests into one delivery
// pass per display frame.
package scheduler

import (
	"log/slog"

	"github.com/1broseidon/wincomp/internal/platform"
)

// DeliveryType says how a pending update reaches its window.
type DeliveryType int

const (
	// ExposeDelivery sends a synchronous expose event for the whole window.
	ExposeDelivery DeliveryType = iota
	// UpdateRequestDelivery sends an update-request event, matching one the
	// window asked for.
	UpdateRequestDelivery
)

func (t DeliveryType) String() string {
	if t == UpdateRequestDelivery {
		return "update-request"
	}
	return "expose"
}

// Target is the compositor side of a frame.
type Target interface {
	// Windows returns the windows front to back.
	Windows() []platform.Window
	DeliverUpdate(w platform.Window, t DeliveryType)
	// Paint paints every window back to front when all is set, otherwise
	// exactly the given windows.
	Paint(all bool, windows []platform.Window)
}

// Scheduler records pending updates and drains them on the next frame.
type Scheduler struct {
	frames platform.FrameScheduler
	target Target
	logger *slog.Logger

	pending map[platform.Window]DeliveryType
	order   []platform.Window
	all     bool

	frameID    platform.FrameID
	scheduled  bool
	delivering bool
}

// New creates a scheduler that asks frames for ticks and delivers to
// target. A nil logger uses slog.Default().
func New(frames platform.FrameScheduler, target Target, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		frames:  frames,
		target:  target,
		logger:  logger,
		pending: make(map[platform.Window]DeliveryType),
	}
}

// RequestUpdateAll marks every window for update on the next frame.
func (s *Scheduler) RequestUpdateAll() {
	s.all = true
	s.schedule()
}

// RequestUpdate queues w for the next frame. A window queued for expose
// delivery is upgraded to update-request delivery when asked; it is never
// downgraded.
func (s *Scheduler) RequestUpdate(w platform.Window, t DeliveryType) {
	cur, ok := s.pending[w]
	switch {
	case !ok:
		s.pending[w] = t
		s.order = append(s.order, w)
	case cur == ExposeDelivery && t == UpdateRequestDelivery:
		s.pending[w] = UpdateRequestDelivery
	}
	s.schedule()
}

// Flush handles a backing-store flush of w. During a delivery pass the new
// content is painted by that pass, so nothing is requested.
func (s *Scheduler) Flush(w platform.Window) {
	if s.delivering {
		return
	}
	s.RequestUpdate(w, ExposeDelivery)
}

// Forget drops any pending update for w.
func (s *Scheduler) Forget(w platform.Window) {
	if _, ok := s.pending[w]; !ok {
		return
	}
	delete(s.pending, w)
	for i, cur := range s.order {
		if cur == w {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Cancel cancels the outstanding frame, if any. Pending updates are kept.
func (s *Scheduler) Cancel() {
	if !s.scheduled {
		return
	}
	s.frames.CancelFrame(s.frameID)
	s.scheduled = false
}

// Scheduled reports whether a frame callback is outstanding.
func (s *Scheduler) Scheduled() bool { return s.scheduled }

// Delivering reports whether a delivery pass is running.
func (s *Scheduler) Delivering() bool { return s.delivering }

// Pending returns the delivery type queued for w.
func (s *Scheduler) Pending(w platform.Window) (DeliveryType, bool) {
	t, ok := s.pending[w]
	return t, ok
}

func (s *Scheduler) schedule() {
	if s.scheduled {
		return
	}
	s.scheduled = true
	s.frameID = s.frames.RequestFrame(s.frame)
}

func (s *Scheduler) frame() {
	s.scheduled = false
	s.deliver()
}

// deliver sets the current batch aside before delivering it, so requests
// made by windows during delivery start the batch of the next frame.
func (s *Scheduler) deliver() {
	pending, order, all := s.pending, s.order, s.all
	s.pending = make(map[platform.Window]DeliveryType)
	s.order = nil
	s.all = false

	s.delivering = true
	if all {
		for _, w := range s.target.Windows() {
			t, ok := pending[w]
			if !ok {
				t = ExposeDelivery
			}
			s.target.DeliverUpdate(w, t)
		}
	} else {
		for _, w := range order {
			s.target.DeliverUpdate(w, pending[w])
		}
	}
	s.delivering = false

	s.logger.Debug("frame delivered", "all", all, "windows", len(order))
	s.target.Paint(all, order)
}

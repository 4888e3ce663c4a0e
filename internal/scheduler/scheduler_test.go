package scheduler

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/1broseidon/wincomp/internal/geom"
	"github.com/1broseidon/wincomp/internal/platform"
	"github.com/1broseidon/wincomp/internal/platform/platformtest"
)

type recordingTarget struct {
	windows   []platform.Window
	delivered []string
	painted   []string
	paintAll  int
	onDeliver func(w platform.Window, t DeliveryType)
}

func (r *recordingTarget) Windows() []platform.Window { return r.windows }

func (r *recordingTarget) DeliverUpdate(w platform.Window, t DeliveryType) {
	r.delivered = append(r.delivered, fmt.Sprintf("%v:%v", w, t))
	if r.onDeliver != nil {
		r.onDeliver(w, t)
	}
}

func (r *recordingTarget) Paint(all bool, windows []platform.Window) {
	if all {
		r.paintAll++
		return
	}
	for _, w := range windows {
		r.painted = append(r.painted, fmt.Sprint(w))
	}
}

func newFixture(names ...string) (*Scheduler, *platformtest.Surface, *recordingTarget, []platform.Window) {
	surface := platformtest.NewSurface(geom.R(0, 0, 800, 600))
	target := &recordingTarget{}
	for _, n := range names {
		target.windows = append(target.windows, platformtest.NewWindow(n, geom.R(0, 0, 10, 10)))
	}
	return New(surface, target, nil), surface, target, target.windows
}

func TestCoalescesRequests(t *testing.T) {
	s, surface, target, ws := newFixture("A")

	for i := 0; i < 5; i++ {
		s.RequestUpdate(ws[0], ExposeDelivery)
	}
	if surface.Requested != 1 {
		t.Fatalf("RequestFrame called %d times, want 1", surface.Requested)
	}

	surface.Tick()
	if want := []string{"A:expose"}; !reflect.DeepEqual(target.delivered, want) {
		t.Fatalf("delivered = %v, want %v", target.delivered, want)
	}
	if want := []string{"A"}; !reflect.DeepEqual(target.painted, want) {
		t.Fatalf("painted = %v, want %v", target.painted, want)
	}
}

func TestUpgradeNeverDowngrade(t *testing.T) {
	tests := []struct {
		name  string
		first DeliveryType
		then  DeliveryType
		want  string
	}{
		{"expose then update-request", ExposeDelivery, UpdateRequestDelivery, "A:update-request"},
		{"update-request then expose", UpdateRequestDelivery, ExposeDelivery, "A:update-request"},
		{"expose twice", ExposeDelivery, ExposeDelivery, "A:expose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, surface, target, ws := newFixture("A")
			s.RequestUpdate(ws[0], tt.first)
			s.RequestUpdate(ws[0], tt.then)
			surface.Tick()
			if want := []string{tt.want}; !reflect.DeepEqual(target.delivered, want) {
				t.Fatalf("delivered = %v, want %v", target.delivered, want)
			}
		})
	}
}

func TestUpdateAllDefaultsToExpose(t *testing.T) {
	s, surface, target, ws := newFixture("A", "B", "C")

	s.RequestUpdate(ws[1], UpdateRequestDelivery)
	s.RequestUpdateAll()
	if surface.Requested != 1 {
		t.Fatalf("RequestFrame called %d times, want 1", surface.Requested)
	}
	surface.Tick()

	want := []string{"A:expose", "B:update-request", "C:expose"}
	if !reflect.DeepEqual(target.delivered, want) {
		t.Fatalf("delivered = %v, want %v", target.delivered, want)
	}
	if target.paintAll != 1 || len(target.painted) != 0 {
		t.Fatalf("paint all = %d, partial = %v; want one full paint", target.paintAll, target.painted)
	}
}

func TestNestedRequestGoesToNextFrame(t *testing.T) {
	s, surface, target, ws := newFixture("A", "B")
	nested := false
	target.onDeliver = func(w platform.Window, _ DeliveryType) {
		if w == ws[0] && !nested {
			nested = true
			s.RequestUpdate(ws[1], UpdateRequestDelivery)
		}
	}

	s.RequestUpdate(ws[0], ExposeDelivery)
	surface.Tick()
	if want := []string{"A:expose"}; !reflect.DeepEqual(target.delivered, want) {
		t.Fatalf("first frame delivered = %v, want %v", target.delivered, want)
	}
	if surface.Pending() != 1 {
		t.Fatalf("nested request scheduled %d frames, want 1", surface.Pending())
	}

	surface.Tick()
	want := []string{"A:expose", "B:update-request"}
	if !reflect.DeepEqual(target.delivered, want) {
		t.Fatalf("delivered = %v, want %v", target.delivered, want)
	}
}

func TestFlushDuringDeliveryIsFolded(t *testing.T) {
	s, surface, target, ws := newFixture("A")
	target.onDeliver = func(w platform.Window, _ DeliveryType) {
		if !s.Delivering() {
			t.Errorf("Delivering() = false inside delivery")
		}
		s.Flush(w)
	}

	s.RequestUpdate(ws[0], UpdateRequestDelivery)
	surface.Tick()
	if surface.Pending() != 0 || s.Scheduled() {
		t.Fatalf("flush during delivery scheduled another frame")
	}

	s.Flush(ws[0])
	if !s.Scheduled() {
		t.Fatalf("flush outside delivery did not schedule a frame")
	}
	if got, _ := s.Pending(ws[0]); got != ExposeDelivery {
		t.Fatalf("flush queued %v, want expose", got)
	}
}

func TestForgetAndCancel(t *testing.T) {
	s, surface, target, ws := newFixture("A", "B")

	s.RequestUpdate(ws[0], ExposeDelivery)
	s.RequestUpdate(ws[1], ExposeDelivery)
	s.Forget(ws[0])
	surface.Tick()
	if want := []string{"B:expose"}; !reflect.DeepEqual(target.delivered, want) {
		t.Fatalf("delivered = %v, want %v", target.delivered, want)
	}

	s.RequestUpdate(ws[0], ExposeDelivery)
	s.Cancel()
	if surface.Pending() != 0 || s.Scheduled() {
		t.Fatalf("Cancel left a frame outstanding")
	}
}

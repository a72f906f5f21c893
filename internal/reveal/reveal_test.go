package reveal

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/responsive"
)

func TestLineProgress(t *testing.T) {
	tests := []struct {
		name   string
		top    float64
		height float64
		want   float64
	}{
		{"below start", 950, 20, 0},
		{"at start", 900, 20, 0},
		{"halfway", 500, 20, 0.5},
		{"past end", 50, 20, 1},
		{"straddling end", 90, 20, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineProgress(tt.top, tt.height, 1000); got != tt.want {
				t.Errorf("LineProgress(%v, %v, 1000) = %v, want %v", tt.top, tt.height, got, tt.want)
			}
		})
	}
}

func TestLineProgressInUnitRange(t *testing.T) {
	for top := -2000.0; top <= 2000; top += 13 {
		for _, h := range []float64{0, 12, 40, 300} {
			p := LineProgress(top, h, 800)
			if p < 0 || p > 1 {
				t.Fatalf("LineProgress(%v, %v, 800) = %v, outside [0,1]", top, h, p)
			}
			for _, class := range []responsive.DeviceClass{responsive.Mobile, responsive.Desktop} {
				pct := Percent(p, class)
				if pct < 0 || pct > 100 {
					t.Fatalf("Percent(%v, %s) = %v, outside [0,100]", p, class, pct)
				}
			}
		}
	}
}

func TestLineProgressEmptyContainer(t *testing.T) {
	if got := LineProgress(0, 10, 0); got != 0 {
		t.Errorf("LineProgress with zero height = %v, want 0", got)
	}
}

func TestPercentMultiplier(t *testing.T) {
	if got := Percent(0.5, responsive.Desktop); got != 87.5 {
		t.Errorf("desktop Percent(0.5) = %v, want 87.5", got)
	}
	if got := Percent(0.5, responsive.Mobile); got != 100 {
		t.Errorf("mobile Percent(0.5) = %v, want 100", got)
	}
	if got := Percent(0.2, responsive.Tablet); got != 35 {
		t.Errorf("tablet Percent(0.2) = %v, want 35", got)
	}
}

func TestMaskShape(t *testing.T) {
	if m := Mask(40, responsive.Mobile, false); !strings.HasPrefix(m, "radial-gradient") {
		t.Errorf("mobile mask = %q, want radial", m)
	}
	if m := Mask(40, responsive.Desktop, false); !strings.Contains(m, "to right") {
		t.Errorf("ltr mask = %q, want to right", m)
	}
	if m := Mask(40, responsive.Desktop, true); !strings.Contains(m, "to left") {
		t.Errorf("rtl mask = %q, want to left", m)
	}
}

type fakeSource struct {
	events    chan struct{}
	available atomic.Bool
}

func newFakeSource() *fakeSource {
	s := &fakeSource{events: make(chan struct{}, 16)}
	s.available.Store(true)
	return s
}

func (s *fakeSource) Events(ctx context.Context) <-chan struct{} { return s.events }

func (s *fakeSource) Geometry() (Geometry, bool) {
	if !s.available.Load() {
		return Geometry{}, false
	}
	return Geometry{
		ContainerTop:    100,
		ContainerHeight: 1000,
		Lines:           []Line{{Top: 600, Height: 20}, {Top: 1200, Height: 20}},
	}, true
}

func TestRevealerAppliesAndGoesIdle(t *testing.T) {
	src := newFakeSource()
	var calls atomic.Int32
	var last atomic.Value
	r := New(src, responsive.Desktop, false, func(states []LineState) {
		calls.Add(1)
		last.Store(states)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	for i := 0; i < 5; i++ {
		src.events <- struct{}{}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	settled := calls.Load()
	if settled == 0 {
		t.Fatal("Apply never called while scrolling")
	}
	time.Sleep(100 * time.Millisecond)
	if calls.Load() != settled {
		t.Errorf("Apply kept firing after scrolling stopped: %d -> %d", settled, calls.Load())
	}

	states := last.Load().([]LineState)
	if states[0].Progress != 0.5 || states[0].Percent != 87.5 {
		t.Errorf("line 0 = %+v, want progress 0.5 percent 87.5", states[0])
	}
	if states[1].Progress != 0 {
		t.Errorf("line 1 progress = %v, want 0", states[1].Progress)
	}

	// Resumes on the next scroll.
	src.events <- struct{}{}
	time.Sleep(20 * time.Millisecond)
	if calls.Load() == settled {
		t.Error("Apply did not resume on the next scroll event")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRevealerNoopWhenUnavailable(t *testing.T) {
	src := newFakeSource()
	src.available.Store(false)
	var calls atomic.Int32
	r := New(src, responsive.Mobile, false, func([]LineState) { calls.Add(1) })

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()
	src.events <- struct{}{}
	time.Sleep(60 * time.Millisecond)
	close(src.events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return when the source closed")
	}
	if calls.Load() != 0 {
		t.Errorf("Apply called %d times for an unavailable container", calls.Load())
	}
}

func TestRevealerFollowsDeviceChanges(t *testing.T) {
	src := newFakeSource()
	var device atomic.Value
	device.Store(responsive.Desktop)
	got := make(chan []LineState, 8)
	r := New(src, responsive.Desktop, false, func(states []LineState) { got <- states })
	r.Device = func() responsive.DeviceClass { return device.Load().(responsive.DeviceClass) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	first := func() []LineState {
		t.Helper()
		select {
		case s := <-got:
			return s
		case <-time.After(time.Second):
			t.Fatal("Apply not called")
			return nil
		}
	}
	src.events <- struct{}{}
	if s := first(); s[0].Percent != 87.5 {
		t.Errorf("desktop percent = %v, want 87.5", s[0].Percent)
	}

	// let the revealer go idle, then scroll again as a narrow container
	time.Sleep(100 * time.Millisecond)
	for len(got) > 0 {
		<-got
	}
	device.Store(responsive.Mobile)
	src.events <- struct{}{}
	if s := first(); s[0].Percent != 100 {
		t.Errorf("mobile percent = %v, want 100", s[0].Percent)
	}
}

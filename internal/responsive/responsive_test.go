package responsive

import (
	"context"
	"testing"
	"time"
)

var headingBounds = Bounds{WidthMin: 200, WidthMax: 1400, SizeMin: 16, SizeMax: 24}

func TestInterpolateEndpoints(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		want  float64
	}{
		{"at max", 1400, 24},
		{"above max", 3000, 24},
		{"at min", 200, 16},
		{"below min clamps", 100, 16},
		{"midpoint", 800, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.width, headingBounds); got != tt.want {
				t.Errorf("Interpolate(%v) = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}

func TestInterpolateMonotonic(t *testing.T) {
	prev := Interpolate(headingBounds.WidthMin, headingBounds)
	for w := headingBounds.WidthMin + 1; w < headingBounds.WidthMax; w += 7 {
		got := Interpolate(w, headingBounds)
		if got < prev {
			t.Fatalf("Interpolate not monotonic at width %v: %v < %v", w, got, prev)
		}
		prev = got
	}
}

func TestInterpolateDegenerateBounds(t *testing.T) {
	b := Bounds{WidthMin: 500, WidthMax: 500, SizeMin: 10, SizeMax: 30}
	for _, w := range []float64{0, 500, 900} {
		if got := Interpolate(w, b); got != 30 {
			t.Errorf("Interpolate(%v) with zero span = %v, want 30", w, got)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		width float64
		want  DeviceClass
	}{
		{320, Mobile},
		{767, Mobile},
		{768, Tablet},
		{1023, Tablet},
		{1024, Desktop},
		{1920, Desktop},
	}
	for _, tt := range tests {
		if got := Classify(tt.width); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.width, got, tt.want)
		}
	}
	if !Mobile.Narrow() || Desktop.Narrow() {
		t.Error("only Mobile should be narrow")
	}
}

type sliceObserver []float64

func (s sliceObserver) Observe(ctx context.Context) <-chan float64 {
	ch := make(chan float64)
	go func() {
		defer close(ch)
		for _, w := range s {
			select {
			case ch <- w:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func TestFluidRecomputesOnEveryResize(t *testing.T) {
	var sizes []float64
	f := NewFluid(headingBounds, func(size float64) { sizes = append(sizes, size) })

	// 1400 twice: the repeat must not fire OnChange.
	f.Run(context.Background(), sliceObserver{100, 800, 1400, 1400})

	want := []float64{16, 20, 24}
	if len(sizes) != len(want) {
		t.Fatalf("OnChange fired %d times (%v), want %d", len(sizes), sizes, len(want))
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("sizes[%d] = %v, want %v", i, sizes[i], want[i])
		}
	}
	if got, ok := f.Size(); !ok || got != 24 {
		t.Errorf("Size() = %v, %v; want 24, true", got, ok)
	}
}

func TestFeedStopsOnCancel(t *testing.T) {
	feed := NewFeed()
	ctx, cancel := context.WithCancel(context.Background())
	ch := feed.Observe(ctx)

	feed.Push(640)
	if got := <-ch; got != 640 {
		t.Fatalf("received %v, want 640", got)
	}

	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("observer channel not closed after cancel")
	}
	feed.Push(1000) // must not panic on a closed subscription
}

func TestFeedDrivesFluid(t *testing.T) {
	feed := NewFeed()
	feed.Push(100) // before anyone observes: replayed to the first observer

	sizes := make(chan float64, 4)
	f := NewFluid(headingBounds, func(size float64) { sizes <- size })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx, feed)
		close(done)
	}()

	next := func() float64 {
		t.Helper()
		select {
		case s := <-sizes:
			return s
		case <-time.After(time.Second):
			t.Fatal("no size recomputed")
			return 0
		}
	}
	if got := next(); got != 16 {
		t.Errorf("replayed size = %v, want 16", got)
	}
	feed.Push(800)
	if got := next(); got != 20 {
		t.Errorf("size after resize = %v, want 20", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

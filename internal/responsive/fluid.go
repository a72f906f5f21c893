package responsive

import (
	"context"
	"sync"
)

// SizeObserver delivers the measured width of an element every time it
// changes, whatever the cause (viewport resize, sidebar collapse, ...).
// The channel is closed when the element goes away or ctx is cancelled.
type SizeObserver interface {
	Observe(ctx context.Context) <-chan float64
}

// Fluid recomputes an interpolated size on every observed width change.
type Fluid struct {
	Bounds   Bounds
	OnChange func(size float64)

	mu   sync.Mutex
	size float64
	seen bool
}

// NewFluid creates a Fluid for the given bounds.
func NewFluid(b Bounds, onChange func(size float64)) *Fluid {
	return &Fluid{Bounds: b, OnChange: onChange}
}

// Size returns the last computed size and whether any width was observed.
func (f *Fluid) Size() (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size, f.seen
}

// Update applies a single width measurement. OnChange fires only when
// the size differs from the previous one.
func (f *Fluid) Update(width float64) float64 {
	size := Interpolate(width, f.Bounds)

	f.mu.Lock()
	changed := !f.seen || size != f.size
	f.size, f.seen = size, true
	f.mu.Unlock()

	if changed && f.OnChange != nil {
		f.OnChange(size)
	}
	return size
}

// Run consumes obs until the observer closes or ctx is cancelled.
func (f *Fluid) Run(ctx context.Context, obs SizeObserver) {
	widths := obs.Observe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case w, ok := <-widths:
			if !ok {
				return
			}
			f.Update(w)
		}
	}
}

// Feed is a push-driven SizeObserver. Like a browser ResizeObserver, a
// new observer first receives the latest width, if any.
type Feed struct {
	mu   sync.Mutex
	subs map[chan float64]struct{}
	last float64
	seen bool
}

// NewFeed creates an empty Feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan float64]struct{})}
}

// Observe implements SizeObserver.
func (f *Feed) Observe(ctx context.Context) <-chan float64 {
	ch := make(chan float64, 8)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	if f.seen {
		ch <- f.last
	}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, ch)
		close(ch)
		f.mu.Unlock()
	}()
	return ch
}

// Push delivers a width to every observer. Slow observers miss values
// rather than block the producer.
func (f *Feed) Push(width float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last, f.seen = width, true
	for ch := range f.subs {
		select {
		case ch <- width:
		default:
		}
	}
}

package reveal

import (
	"context"
	"time"

	"github.com/Zachkp/portfolio/internal/responsive"
)

// DefaultInterval is how often reveal styles are applied while the
// container is scrolling; scrolling is considered finished after the
// same amount of inactivity.
const DefaultInterval = 24 * time.Millisecond

// Line is the live geometry of one text line.
type Line struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Geometry is a snapshot of a scroll container and its lines.
type Geometry struct {
	ContainerTop    float64 `json:"container_top"`
	ContainerHeight float64 `json:"container_height"`
	Lines           []Line  `json:"lines"`
}

// ScrollSource abstracts the scroll container. Events fires once per
// scroll event and is closed when the container goes away. Geometry
// returns false when the container is no longer available.
type ScrollSource interface {
	Events(ctx context.Context) <-chan struct{}
	Geometry() (Geometry, bool)
}

// LineState is the computed reveal state of a line.
type LineState struct {
	Progress float64 `json:"progress"`
	Percent  float64 `json:"percent"`
	Style    string  `json:"style"`
}

// Compute derives the state of every line in g.
func Compute(g Geometry, class responsive.DeviceClass, rtl bool) []LineState {
	out := make([]LineState, len(g.Lines))
	for i, l := range g.Lines {
		p := LineProgress(l.Top-g.ContainerTop, l.Height, g.ContainerHeight)
		pct := Percent(p, class)
		out[i] = LineState{Progress: p, Percent: pct, Style: Style(pct, class, rtl)}
	}
	return out
}

// Revealer applies reveal states while its source scrolls. It applies
// immediately on the first scroll event, then at most once per Interval
// until the source has been idle for Interval.
type Revealer struct {
	Source   ScrollSource
	Class    responsive.DeviceClass
	RTL      bool
	Interval time.Duration
	Apply    func([]LineState)
	// Device, when set, is consulted on every update instead of Class,
	// for containers whose device class changes while scrolling.
	Device func() responsive.DeviceClass

	lastScroll time.Time
	applied    int
}

// New creates a Revealer with the default interval.
func New(src ScrollSource, class responsive.DeviceClass, rtl bool, apply func([]LineState)) *Revealer {
	return &Revealer{Source: src, Class: class, RTL: rtl, Interval: DefaultInterval, Apply: apply}
}

// Applied reports how many times Apply has been called. Only valid
// after Run has returned.
func (r *Revealer) Applied() int { return r.applied }

// Run blocks until ctx is cancelled or the source's event channel closes.
// Every timer it starts is stopped before it returns.
func (r *Revealer) Run(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	events := r.Source.Events(ctx)
	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			r.lastScroll = time.Now()
			if ticker == nil {
				r.update()
				ticker = time.NewTicker(interval)
				tick = ticker.C
			}
		case <-tick:
			r.update()
			if time.Since(r.lastScroll) >= interval {
				stop()
			}
		}
	}
}

func (r *Revealer) update() {
	g, ok := r.Source.Geometry()
	if !ok || g.ContainerHeight <= 0 {
		return
	}
	class := r.Class
	if r.Device != nil {
		class = r.Device()
	}
	states := Compute(g, class, r.RTL)
	r.applied++
	if r.Apply != nil {
		r.Apply(states)
	}
}

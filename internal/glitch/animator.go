package glitch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gg"
)

// FrameInterval is the animation tick used for colour blending.
const FrameInterval = 16 * time.Millisecond

// CellView is the wire form of a cell.
type CellView struct {
	Index int    `json:"i"`
	Char  string `json:"c"`
	Color string `json:"k"`
}

// Frame is a drawable update. Full frames carry every cell; partial
// frames carry only cells that changed since the previous frame.
type Frame struct {
	Cols  int        `json:"cols"`
	Rows  int        `json:"rows"`
	Full  bool       `json:"full"`
	Cells []CellView `json:"cells"`
}

// Animator owns a Grid and drives it from two timers: the update
// cadence, which reassigns cells, and the animation tick, which blends
// colours and emits frames only while something is still blending.
type Animator struct {
	mu      sync.Mutex
	grid    *Grid
	dirty   map[int]struct{}
	resized bool
	emit    func(Frame) error
	logger  *slog.Logger
}

// NewAnimator wraps grid. emit receives every frame; an emit error
// stops the animation.
func NewAnimator(grid *Grid, emit func(Frame) error, logger *slog.Logger) *Animator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Animator{grid: grid, dirty: make(map[int]struct{}), resized: true, emit: emit, logger: logger}
}

// Resize reinitialises the grid for a new container size. The next
// frame is a full one.
func (a *Animator) Resize(width, height int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.grid.Resize(width, height)
	a.resized = true
	clear(a.dirty)
}

// Run animates until ctx is cancelled or emit fails. Both timers are
// stopped before it returns.
func (a *Animator) Run(ctx context.Context) error {
	update := time.NewTicker(a.grid.Options().Interval)
	defer update.Stop()
	frame := time.NewTicker(FrameInterval)
	defer frame.Stop()

	if err := a.flush(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-update.C:
			a.mu.Lock()
			for _, i := range a.grid.Tick() {
				a.dirty[i] = struct{}{}
			}
			smooth := a.grid.opts.Smooth
			a.mu.Unlock()
			if !smooth {
				if err := a.flush(); err != nil {
					return err
				}
			}
		case <-frame.C:
			a.mu.Lock()
			if a.grid.NeedsRedraw() {
				for _, i := range a.grid.Step() {
					a.dirty[i] = struct{}{}
				}
			}
			a.mu.Unlock()
			if err := a.flush(); err != nil {
				return err
			}
		}
	}
}

// flush emits pending changes, if any.
func (a *Animator) flush() error {
	a.mu.Lock()
	if !a.resized && len(a.dirty) == 0 {
		a.mu.Unlock()
		return nil
	}
	f := a.snapshotLocked()
	a.mu.Unlock()

	if err := a.emit(f); err != nil {
		a.logger.Debug("glitch frame not delivered", "error", err)
		return fmt.Errorf("emitting frame: %w", err)
	}
	return nil
}

func (a *Animator) snapshotLocked() Frame {
	g := a.grid
	f := Frame{Cols: g.Cols, Rows: g.Rows, Full: a.resized}
	if a.resized {
		f.Cells = make([]CellView, len(g.Cells))
		for i := range g.Cells {
			f.Cells[i] = view(i, &g.Cells[i])
		}
	} else {
		f.Cells = make([]CellView, 0, len(a.dirty))
		for i := range a.dirty {
			f.Cells = append(f.Cells, view(i, &g.Cells[i]))
		}
	}
	a.resized = false
	clear(a.dirty)
	return f
}

func view(i int, c *Cell) CellView {
	return CellView{Index: i, Char: string(c.Char), Color: hex(c.Color)}
}

func hex(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

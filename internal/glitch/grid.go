// Package glitch implements the letter-glitch background: a grid of
// monospaced glyphs where a random few change character and colour on
// every update, optionally blending towards their new colour.
package glitch

import (
	"math/rand/v2"
	"time"

	"github.com/gogpu/gg"
)

const (
	CellWidth  = 10
	CellHeight = 20

	// blendSteps animation ticks take a cell from its old colour to its
	// target, i.e. progress advances by 1/blendSteps = 0.05 per tick.
	blendSteps = 20
	BlendStep  = 1.0 / blendSteps

	// UpdateFraction of the cells is reassigned on each update.
	UpdateFraction = 0.05

	DefaultInterval = 50 * time.Millisecond
)

// DefaultGlyphs is the character pool cells draw from.
const DefaultGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ!@#$&*()-_+=/[]{};:<>.,0123456789"

// DefaultPalette holds the target colours.
var DefaultPalette = []gg.RGBA{gg.Hex("#2b4539"), gg.Hex("#61dca3"), gg.Hex("#61b3dc")}

// Options configure a Grid.
type Options struct {
	Glyphs   string
	Palette  []gg.RGBA
	Smooth   bool
	Interval time.Duration
	Seed     uint64
}

func (o Options) withDefaults() Options {
	if o.Glyphs == "" {
		o.Glyphs = DefaultGlyphs
	}
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	return o
}

// Cell is one glyph position.
type Cell struct {
	Char   rune
	From   gg.RGBA
	Color  gg.RGBA
	Target gg.RGBA
	steps  int
}

// Blend returns the colour blend progress in [0, 1].
func (c *Cell) Blend() float64 {
	return float64(c.steps) * BlendStep
}

// Blending reports whether the cell has not reached its target yet.
func (c *Cell) Blending() bool {
	return c.steps < blendSteps
}

// Grid is the logical state of one glitch surface. It is not safe for
// concurrent use; Animator serialises access.
type Grid struct {
	Cols, Rows int
	Cells      []Cell

	opts   Options
	glyphs []rune
	rng    *rand.Rand
}

// NewGrid sizes a grid for a width x height pixel container.
func NewGrid(width, height int, opts Options) *Grid {
	opts = opts.withDefaults()
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := &Grid{
		opts:   opts,
		glyphs: []rune(opts.Glyphs),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	g.Resize(width, height)
	return g
}

// Options returns the effective options.
func (g *Grid) Options() Options { return g.opts }

// Resize recomputes the grid dimensions and reinitialises every cell.
func (g *Grid) Resize(width, height int) {
	g.Cols = ceilDiv(width, CellWidth)
	g.Rows = ceilDiv(height, CellHeight)
	g.Cells = make([]Cell, g.Cols*g.Rows)
	for i := range g.Cells {
		c := g.randomColor()
		g.Cells[i] = Cell{Char: g.randomGlyph(), From: c, Color: c, Target: c, steps: blendSteps}
	}
}

// Tick reassigns a random UpdateFraction of the cells and returns their
// indices. In smooth mode the new colour becomes the blend target;
// otherwise the cell snaps to it.
func (g *Grid) Tick() []int {
	if len(g.Cells) == 0 {
		return nil
	}
	n := max(1, int(float64(len(g.Cells))*UpdateFraction))
	changed := make([]int, 0, n)
	for range n {
		i := g.rng.IntN(len(g.Cells))
		c := &g.Cells[i]
		c.Char = g.randomGlyph()
		target := g.randomColor()
		if g.opts.Smooth {
			c.From, c.Target, c.steps = c.Color, target, 0
		} else {
			c.From, c.Color, c.Target, c.steps = target, target, target, blendSteps
		}
		changed = append(changed, i)
	}
	return changed
}

// NeedsRedraw reports whether any cell is still blending.
func (g *Grid) NeedsRedraw() bool {
	for i := range g.Cells {
		if g.Cells[i].Blending() {
			return true
		}
	}
	return false
}

// Step advances every blending cell by one BlendStep and returns the
// indices that moved. Cells that reached their target are left alone.
func (g *Grid) Step() []int {
	var moved []int
	for i := range g.Cells {
		c := &g.Cells[i]
		if !c.Blending() {
			continue
		}
		c.steps++
		if c.steps == blendSteps {
			c.Color = c.Target
		} else {
			c.Color = c.From.Lerp(c.Target, c.Blend())
		}
		moved = append(moved, i)
	}
	return moved
}

func (g *Grid) randomGlyph() rune {
	return g.glyphs[g.rng.IntN(len(g.glyphs))]
}

func (g *Grid) randomColor() gg.RGBA {
	return g.opts.Palette[g.rng.IntN(len(g.opts.Palette))]
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

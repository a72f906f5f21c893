// Package shader evaluates the decorative background patterns on the
// CPU. Each pattern is a pure function of the normalised pixel
// coordinate, a time in seconds and a seed, so frames are reproducible.
package shader

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/gogpu/gg"
)

// Pattern returns the colour at (u, v) in [0,1]^2 at time t.
type Pattern func(u, v, t float64, seed uint32) gg.RGBA

// Kind names a registered pattern.
type Kind string

const (
	Voronoi Kind = "voronoi"
	Flow    Kind = "flow"
)

var patterns = map[Kind]Pattern{
	Voronoi: VoronoiAt,
	Flow:    FlowAt,
}

// Lookup returns the pattern registered under k.
func Lookup(k Kind) (Pattern, error) {
	p, ok := patterns[k]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", k)
	}
	return p, nil
}

// Kinds lists the registered patterns in name order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(patterns))
	for k := range patterns {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Base and accent colours shared by the patterns.
var (
	Base   = gg.Hex("#0b1110")
	Accent = gg.Hex("#61dca3")
	Cool   = gg.Hex("#61b3dc")
)

const voronoiScale = 6.0

// VoronoiAt shades by the distance to the nearest drifting feature point
// and darkens cell borders.
func VoronoiAt(u, v, t float64, seed uint32) gg.RGBA {
	x, y := u*voronoiScale, v*voronoiScale
	cx, cy := math.Floor(x), math.Floor(y)

	f1, f2 := math.MaxFloat64, math.MaxFloat64
	for oy := -1.0; oy <= 1; oy++ {
		for ox := -1.0; ox <= 1; ox++ {
			gx, gy := cx+ox, cy+oy
			hx, hy := hash2(gx, gy, seed)
			px := gx + 0.5 + 0.4*math.Sin(t+6.2831*hx)
			py := gy + 0.5 + 0.4*math.Sin(t+6.2831*hy)
			d := math.Hypot(px-x, py-y)
			switch {
			case d < f1:
				f1, f2 = d, f1
			case d < f2:
				f2 = d
			}
		}
	}

	edge := smoothstep(0, 0.08, f2-f1)
	glow := 1 - smoothstep(0, 0.9, f1)
	c := Base.Lerp(Accent, 0.45*glow)
	return c.Lerp(Cool, 0.35*(1-edge))
}

// FlowAt layers a few sine fields warped by each other, a cheap
// stand-in for the reaction-diffusion look.
func FlowAt(u, v, t float64, seed uint32) gg.RGBA {
	s := float64(seed%1000) / 1000
	x, y := u*4+s, v*4-s
	for i := 1.0; i <= 4; i++ {
		x += 0.6 / i * math.Sin(i*y+t*0.7+0.3*i)
		y += 0.6 / i * math.Cos(i*x+t*0.5+0.2*i)
	}
	a := 0.5 + 0.5*math.Sin(x+y)
	b := 0.5 + 0.5*math.Cos(x-y+t*0.3)
	return Base.Lerp(Accent, 0.6*a*b).Lerp(Cool, 0.3*(1-a))
}

// Render evaluates p for every pixel of a width x height image.
func Render(p Pattern, width, height int, t float64, seed uint32) *gg.Context {
	dc := gg.NewContext(width, height)
	for py := 0; py < height; py++ {
		v := (float64(py) + 0.5) / float64(height)
		for px := 0; px < width; px++ {
			u := (float64(px) + 0.5) / float64(width)
			dc.SetPixel(px, py, p(u, v, t, seed))
		}
	}
	return dc
}

// WritePNG renders pattern k and encodes it as PNG.
func WritePNG(w io.Writer, k Kind, width, height int, t float64, seed uint32) error {
	p, err := Lookup(k)
	if err != nil {
		return err
	}
	dc := Render(p, width, height, t, seed)
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// hash2 maps an integer lattice point to two pseudo-random values in [0,1).
func hash2(x, y float64, seed uint32) (float64, float64) {
	h := uint32(int32(x))*0x8da6b343 ^ uint32(int32(y))*0xd8163841 ^ seed*0xcb1ab31f
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	a := float64(h&0xffff) / 65536
	b := float64(h>>16) / 65536
	return a, b
}

func smoothstep(e0, e1, x float64) float64 {
	t := math.Max(0, math.Min(1, (x-e0)/(e1-e0)))
	return t * t * (3 - 2*t)
}

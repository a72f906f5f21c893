// Package responsive computes sizes that scale linearly with a measured
// width, and classifies viewports into device classes.
package responsive

// Bounds maps an input width range onto an output size range.
type Bounds struct {
	WidthMin float64 `json:"width_min" koanf:"width_min"`
	WidthMax float64 `json:"width_max" koanf:"width_max"`
	SizeMin  float64 `json:"size_min" koanf:"size_min"`
	SizeMax  float64 `json:"size_max" koanf:"size_max"`
}

// Interpolate returns the size for width, linearly interpolated between
// the bounds and clamped to [SizeMin, SizeMax] along the width axis.
// When WidthMax equals WidthMin the ratio is treated as 1.
func Interpolate(width float64, b Bounds) float64 {
	return b.SizeMin + (b.SizeMax-b.SizeMin)*Ratio(width, b)
}

// Ratio is the clamped position of width inside [WidthMin, WidthMax].
func Ratio(width float64, b Bounds) float64 {
	span := b.WidthMax - b.WidthMin
	if span == 0 {
		return 1
	}
	return clamp((width-b.WidthMin)/span, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

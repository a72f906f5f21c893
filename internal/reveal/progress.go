// Package reveal drives the scroll-linked "wipe" that uncovers each
// line of a paragraph as it travels up a scrolling container.
package reveal

import (
	"fmt"

	"github.com/Zachkp/portfolio/internal/responsive"
)

// Window edges as fractions of the container height. A line starts
// revealing when its top crosses startEdge and is fully revealed once
// it has passed endEdge.
const (
	startEdge = 0.9
	endEdge   = 0.1
)

// Multipliers push the reveal to completion before a line reaches the
// middle of the screen.
const (
	narrowMultiplier = 2.0
	wideMultiplier   = 1.75
)

// LineProgress returns the reveal progress in [0, 1] of a line whose top
// sits relativeTop pixels below the container's top edge.
func LineProgress(relativeTop, lineHeight, containerHeight float64) float64 {
	start := containerHeight * startEdge
	end := containerHeight * endEdge
	if start <= end {
		return 0
	}

	switch {
	case relativeTop < start && relativeTop+lineHeight > end:
		return clamp(1-(relativeTop-end)/(start-end), 0, 1)
	case relativeTop+lineHeight <= end:
		return 1
	default:
		return 0
	}
}

// Multiplier returns the progress multiplier for a device class.
func Multiplier(class responsive.DeviceClass) float64 {
	if class.Narrow() {
		return narrowMultiplier
	}
	return wideMultiplier
}

// Percent converts progress into the displayed percentage, clamped to
// [0, 100].
func Percent(progress float64, class responsive.DeviceClass) float64 {
	return clamp(progress*100*Multiplier(class), 0, 100)
}

// Mask returns the CSS mask image for a reveal percentage. Narrow
// layouts use a radial wipe; wide layouts wipe along the reading
// direction.
func Mask(percent float64, class responsive.DeviceClass, rtl bool) string {
	p := clamp(percent, 0, 100)
	if class.Narrow() {
		return fmt.Sprintf("radial-gradient(circle at center, #000 %.2f%%, transparent %.2f%%)", p, p*1.5)
	}
	dir := "to right"
	if rtl {
		dir = "to left"
	}
	return fmt.Sprintf("linear-gradient(%s, #000 %.2f%%, transparent %.2f%%)", dir, p, p)
}

// Style renders the inline style for a line at the given percentage.
func Style(percent float64, class responsive.DeviceClass, rtl bool) string {
	m := Mask(percent, class, rtl)
	return fmt.Sprintf("--reveal:%.2f%%;mask-image:%s;-webkit-mask-image:%s", clamp(percent, 0, 100), m, m)
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

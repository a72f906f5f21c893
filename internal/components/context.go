// Package components renders the site's sections and widgets as
// gomponents nodes. Every visible string comes from the translator.
package components

import (
	"math"
	"strings"

	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/responsive"
)

// Context carries what every component needs to render one request.
type Context struct {
	Tr       *i18n.Translator
	Lang     string
	Viewport float64
	Class    responsive.DeviceClass
	Heading  responsive.Bounds
	// Width is the content column width in pixels.
	Width float64
}

// NewContext classifies the viewport and binds the language.
func NewContext(tr *i18n.Translator, lang string, viewport float64, heading responsive.Bounds, width float64) Context {
	return Context{
		Tr:       tr,
		Lang:     lang,
		Viewport: viewport,
		Class:    responsive.Classify(viewport),
		Heading:  heading,
		Width:    width,
	}
}

// T looks up key in the request language.
func (c Context) T(key string) string { return c.Tr.T(c.Lang, key) }

// RTL reports whether the request language reads right to left.
func (c Context) RTL() bool { return i18n.IsRTL(c.Lang) }

// HeadingSize is the interpolated heading font size in pixels.
func (c Context) HeadingSize() float64 {
	return responsive.Interpolate(c.Viewport, c.Heading)
}

// glyphAdvance approximates the average advance of a proportional font
// as a fraction of its size.
const glyphAdvance = 0.5

// WrapLines greedily breaks text into lines that fit width at the given
// font size. Words longer than a line get a line of their own.
func WrapLines(text string, width, fontSize float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	perLine := 1
	if fontSize > 0 && width > 0 {
		perLine = max(1, int(math.Floor(width/(fontSize*glyphAdvance))))
	}

	var lines []string
	var cur strings.Builder
	n := 0
	for _, w := range words {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > perLine {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	return append(lines, cur.String())
}

package glitch

import (
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	monoOnce   sync.Once
	monoSource *text.FontSource
	monoErr    error
)

func monoFont() (*text.FontSource, error) {
	monoOnce.Do(func() {
		monoSource, monoErr = text.NewFontSource(gomono.TTF)
	})
	return monoSource, monoErr
}

// Background is painted behind the glyphs.
var Background = gg.RGB(0, 0, 0)

// Render draws the grid at one pixel per CSS pixel.
func Render(g *Grid) (*gg.Context, error) {
	src, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("loading mono font: %w", err)
	}

	dc := gg.NewContext(g.Cols*CellWidth, g.Rows*CellHeight)
	dc.ClearWithColor(Background)
	dc.SetFont(src.Face(16))
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			c := &g.Cells[row*g.Cols+col]
			dc.SetColor(c.Color.Color())
			dc.DrawString(string(c.Char), float64(col*CellWidth), float64(row*CellHeight+16))
		}
	}
	return dc, nil
}

// WritePNG renders the grid and encodes it as PNG.
func WritePNG(w io.Writer, g *Grid) error {
	dc, err := Render(g)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

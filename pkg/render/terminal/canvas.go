// Package terminal shows the kick in a terminal using tcell.
package terminal

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-parabola/pkg/render"
	"github.com/opd-ai/go-parabola/pkg/render/raster"
)

// DefaultSky fills cells nothing was drawn on.
var DefaultSky = render.DefaultPalette().Sky

// halfBlock paints the upper half of a cell in the foreground color and the
// lower half in the background, giving two pixel rows per cell.
const halfBlock = '▀'

// Canvas rasterizes the scene at full resolution and downsamples it into
// terminal cells.
type Canvas struct {
	*raster.Surface
	Sky color.RGBA
}

// NewCanvas creates a canvas sized to the layout.
func NewCanvas(layout render.Layout) *Canvas {
	return &Canvas{
		Surface: raster.NewSurface(int(layout.Width), int(layout.Height)),
		Sky:     DefaultSky,
	}
}

// Present draws the canvas into the cell rectangle (x0, y0, cols, rows).
func (c *Canvas) Present(screen tcell.Screen, x0, y0, cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := c.Sample(col, 2*row, cols, 2*rows)
			bottom := c.Sample(col, 2*row+1, cols, 2*rows)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			screen.SetContent(x0+col, y0+row, halfBlock, nil, style)
		}
	}
}

// Sample returns the color of pixel (px, py) of a cols x rows downsampled grid.
// Drawn pixels in the source block are averaged by alpha so thin lines survive
// the reduction; a block with nothing drawn is sky.
func (c *Canvas) Sample(px, py, cols, rows int) color.RGBA {
	img := c.Image()
	b := img.Bounds()
	x0, x1 := span(px, cols, b.Dx())
	y0, y1 := span(py, rows, b.Dy())

	var r, g, bl, a uint64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			r += uint64(p.R)
			g += uint64(p.G)
			bl += uint64(p.B)
			a += uint64(p.A)
		}
	}
	if a == 0 {
		return c.Sky
	}
	// RGBA is premultiplied
	return color.RGBA{
		R: uint8(min(r*0xff/a, 0xff)),
		G: uint8(min(g*0xff/a, 0xff)),
		B: uint8(min(bl*0xff/a, 0xff)),
		A: 0xff,
	}
}

// span maps cell i of n onto a non-empty source range of size.
func span(i, n, size int) (int, int) {
	lo := i * size / n
	hi := (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	if hi > size {
		hi = size
	}
	if lo >= size {
		lo = size - 1
	}
	return lo, hi
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var _ render.Surface = (*Canvas)(nil)

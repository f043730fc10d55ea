// Package raster implements render.Surface on an in-memory RGBA image using
// the golang.org/x/image/vector anti-aliasing rasterizer.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleKappa places cubic Bézier control points for a quarter circle.
const circleKappa = 0.5522847498

// StrokeWidth is the width of lines and circle outlines in surface units.
const StrokeWidth = 1.0

// Surface rasterizes scene primitives into an *image.RGBA.
type Surface struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewSurface creates a transparent surface of the given size.
func NewSurface(width, height int) *Surface {
	return &Surface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image. It is overwritten by later draw calls.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Bounds returns the surface size as a rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// ClearRect implements render.Surface.
func (s *Surface) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(s.img, r.Intersect(s.img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

// DrawLine implements render.Surface.
func (s *Surface) DrawLine(x0, y0, x1, y1 float64, stroke color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// half-width normal
	nx, ny := -dy/length*StrokeWidth/2, dx/length*StrokeWidth/2

	s.begin()
	s.z.MoveTo(float32(x0+nx), float32(y0+ny))
	s.z.LineTo(float32(x1+nx), float32(y1+ny))
	s.z.LineTo(float32(x1-nx), float32(y1-ny))
	s.z.LineTo(float32(x0-nx), float32(y0-ny))
	s.z.ClosePath()
	s.fill(stroke)
}

// FillRect implements render.Surface.
func (s *Surface) FillRect(x, y, w, h float64, fill color.Color) {
	s.begin()
	s.z.MoveTo(float32(x), float32(y))
	s.z.LineTo(float32(x+w), float32(y))
	s.z.LineTo(float32(x+w), float32(y+h))
	s.z.LineTo(float32(x), float32(y+h))
	s.z.ClosePath()
	s.fill(fill)
}

// FillCircle implements render.Surface. The outline is drawn as a stroke-colored
// disc with the fill-colored disc inset by StrokeWidth on top.
func (s *Surface) FillCircle(cx, cy, r float64, fill, stroke color.Color) {
	if r <= 0 {
		return
	}
	s.begin()
	s.circlePath(cx, cy, r)
	s.fill(stroke)

	if inner := r - StrokeWidth; inner > 0 {
		s.begin()
		s.circlePath(cx, cy, inner)
		s.fill(fill)
	}
}

func (s *Surface) begin() {
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
}

func (s *Surface) fill(c color.Color) {
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (s *Surface) circlePath(cx, cy, r float64) {
	k := r * circleKappa
	s.z.MoveTo(float32(cx+r), float32(cy))
	s.z.CubeTo(float32(cx+r), float32(cy+k), float32(cx+k), float32(cy+r), float32(cx), float32(cy+r))
	s.z.CubeTo(float32(cx-k), float32(cy+r), float32(cx-r), float32(cy+k), float32(cx-r), float32(cy))
	s.z.CubeTo(float32(cx-r), float32(cy-k), float32(cx-k), float32(cy-r), float32(cx), float32(cy-r))
	s.z.CubeTo(float32(cx+k), float32(cy-r), float32(cx+r), float32(cy-k), float32(cx+r), float32(cy))
	s.z.ClosePath()
}

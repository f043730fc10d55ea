// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// StrokeWidth is the thickness of lines and circle borders.
const StrokeWidth = 1

// shapeSink receives shape entities. *common.RenderSystem implements it.
type shapeSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// shape is one pooled drawable.
type shape struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoSurface implements render.Surface on top of the engo render system.
// Each primitive claims the next entity from a pool; ClearRect hides the pool,
// so a full redraw reuses the same entities frame after frame.
type EngoSurface struct {
	sink   shapeSink
	shapes []*shape
	next   int
}

// NewEngoSurface creates a surface that adds its shapes to sink.
func NewEngoSurface(sink shapeSink) *EngoSurface {
	return &EngoSurface{sink: sink}
}

// ClearRect hides every shape drawn since the last clear. The scene always
// clears the whole surface; the window background shows through.
func (s *EngoSurface) ClearRect(x, y, w, h float64) {
	for _, sh := range s.shapes {
		sh.Hidden = true
	}
	s.next = 0
}

// DrawLine draws a thin rotated rectangle from (x0, y0) to (x1, y1).
func (s *EngoSurface) DrawLine(x0, y0, x1, y1 float64, stroke color.Color) {
	dx, dy := x1-x0, y1-y0
	sh := s.claim(common.Rectangle{}, stroke)
	sh.Position = engo.Point{X: float32(x0), Y: float32(y0 - StrokeWidth/2.0)}
	sh.Width = float32(math.Hypot(dx, dy))
	sh.Height = StrokeWidth
	sh.Rotation = float32(math.Atan2(dy, dx) * 180 / math.Pi)
}

// FillRect draws a filled axis-aligned rectangle.
func (s *EngoSurface) FillRect(x, y, w, h float64, fill color.Color) {
	sh := s.claim(common.Rectangle{}, fill)
	sh.Position = engo.Point{X: float32(x), Y: float32(y)}
	sh.Width = float32(w)
	sh.Height = float32(h)
}

// FillCircle draws a filled circle with a border.
func (s *EngoSurface) FillCircle(cx, cy, r float64, fill, stroke color.Color) {
	sh := s.claim(common.Circle{BorderWidth: StrokeWidth, BorderColor: stroke}, fill)
	sh.Position = engo.Point{X: float32(cx - r), Y: float32(cy - r)}
	sh.Width = float32(2 * r)
	sh.Height = float32(2 * r)
}

// Visible returns how many shapes are currently shown.
func (s *EngoSurface) Visible() int {
	return s.next
}

// claim returns the next pooled shape, creating and registering one if the
// pool is exhausted. The drawable is set before registration so the render
// system picks the shape shader; rectangles and circles share it, so reuse
// never needs a shader change. Later shapes start at a higher z-index.
func (s *EngoSurface) claim(d common.Drawable, c color.Color) *shape {
	if s.next == len(s.shapes) {
		sh := &shape{BasicEntity: ecs.NewBasic()}
		sh.Drawable = d
		sh.Color = c
		sh.StartZIndex = float32(len(s.shapes) + 1)
		s.shapes = append(s.shapes, sh)
		if s.sink != nil {
			s.sink.Add(&sh.BasicEntity, &sh.RenderComponent, &sh.SpaceComponent)
		}
	}
	sh := s.shapes[s.next]
	s.next++

	sh.Drawable = d
	sh.Color = c
	sh.Hidden = false
	sh.Rotation = 0
	return sh
}

package render

import (
	"image/color"

	"github.com/opd-ai/go-parabola/pkg/physics"
)

// Palette holds the scene colors.
type Palette struct {
	Ground     color.Color
	Launcher   color.Color
	BallFill   color.Color
	BallStroke color.Color

	// Sky is the host background behind cleared areas.
	Sky color.RGBA
}

// DefaultPalette matches the reference scene.
func DefaultPalette() Palette {
	return Palette{
		Ground:     color.RGBA{0x33, 0x33, 0x33, 0xff},
		Launcher:   color.RGBA{0x66, 0x66, 0x66, 0xff},
		BallFill:   color.White,
		BallStroke: color.Black,
		Sky:        color.RGBA{0x87, 0xce, 0xeb, 0xff},
	}
}

// Scene renders the static ground and launcher plus the ball.
// It holds no draw state between calls; every Render redraws everything.
type Scene struct {
	Layout  Layout
	Palette Palette
}

// NewScene creates a scene with the default palette.
func NewScene(layout Layout) *Scene {
	return &Scene{
		Layout:  layout,
		Palette: DefaultPalette(),
	}
}

// Render clears the surface and draws the full scene with the ball at pos.
// A nil surface draws nothing.
func (s *Scene) Render(surface Surface, pos physics.Position) {
	if surface == nil {
		return
	}
	l := s.Layout
	groundY := l.GroundY()

	surface.ClearRect(0, 0, l.Width, l.Height)
	surface.DrawLine(0, groundY, l.Width, groundY, s.Palette.Ground)
	surface.FillRect(l.LauncherX, groundY-l.LauncherHeight, l.LauncherWidth, l.LauncherHeight, s.Palette.Launcher)

	bx, by := l.WorldToScreen(pos.X, pos.Y)
	surface.FillCircle(bx, by, l.BallRadius, s.Palette.BallFill, s.Palette.BallStroke)
}

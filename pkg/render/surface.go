// Package render draws the kick scene onto an immediate-mode 2D surface.
package render

import "image/color"

// Surface is the drawing context the scene renders into. Coordinates are
// logical units with the origin at the top-left corner and y growing downward.
type Surface interface {
	// ClearRect erases the given rectangle.
	ClearRect(x, y, w, h float64)
	// DrawLine strokes a straight line.
	DrawLine(x0, y0, x1, y1 float64, stroke color.Color)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, fill color.Color)
	// FillCircle fills a circle and strokes its outline.
	FillCircle(cx, cy, r float64, fill, stroke color.Color)
}

// Layout holds the scene geometry in logical surface units.
type Layout struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Scale          float64 `json:"scale"`          // pixels per meter
	GroundOffset   float64 `json:"groundOffset"`   // ground line distance above the bottom edge
	LaunchX        float64 `json:"launchX"`        // screen x of the launch point
	BallRadius     float64 `json:"ballRadius"`
	LauncherX      float64 `json:"launcherX"`
	LauncherWidth  float64 `json:"launcherWidth"`
	LauncherHeight float64 `json:"launcherHeight"`
}

// DefaultLayout returns the 500x300 reference scene.
func DefaultLayout() Layout {
	return Layout{
		Width:          500,
		Height:         300,
		Scale:          20,
		GroundOffset:   50,
		LaunchX:        50,
		BallRadius:     10,
		LauncherX:      30,
		LauncherWidth:  20,
		LauncherHeight: 50,
	}
}

// GroundY returns the screen y of the ground line.
func (l Layout) GroundY() float64 {
	return l.Height - l.GroundOffset
}

// WorldToScreen maps a physical position in meters to surface coordinates.
func (l Layout) WorldToScreen(x, y float64) (float64, float64) {
	return l.LaunchX + x*l.Scale, l.GroundY() - y*l.Scale
}

package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-parabola/pkg/logging"
)

// NullSurface is a Surface that only logs the primitives it receives.
// The headless host draws into it.
type NullSurface struct {
	logger *logging.Logger
}

// NewNullSurface creates a NullSurface logging through logger.
func NewNullSurface(logger *logging.Logger) *NullSurface {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullSurface{logger: logger}
}

// ClearRect implements Surface.
func (n *NullSurface) ClearRect(x, y, w, h float64) {
	n.logger.Debug(context.Background(), "ClearRect called", "x", x, "y", y, "w", w, "h", h)
}

// DrawLine implements Surface.
func (n *NullSurface) DrawLine(x0, y0, x1, y1 float64, stroke color.Color) {
	n.logger.Debug(context.Background(), "DrawLine called", "x0", x0, "y0", y0, "x1", x1, "y1", y1)
}

// FillRect implements Surface.
func (n *NullSurface) FillRect(x, y, w, h float64, fill color.Color) {
	n.logger.Debug(context.Background(), "FillRect called", "x", x, "y", y, "w", w, "h", h)
}

// FillCircle implements Surface.
func (n *NullSurface) FillCircle(cx, cy, r float64, fill, stroke color.Color) {
	n.logger.Debug(context.Background(), "FillCircle called", "cx", cx, "cy", cy, "r", r)
}

package physics

import "math"

// Vector2D is a point or velocity in world meters, y pointing up.
type Vector2D struct {
	X float64
	Y float64
}

// Origin is the launch point.
var Origin = Vector2D{}

func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies both components by factor. Displacement is velocity
// scaled by elapsed seconds.
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length is the magnitude; for a launch velocity it is the speed in m/s.
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance is the straight-line distance in meters between two points.
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// FromAngle builds a vector of the given magnitude pointing angle radians
// above the +x axis.
func FromAngle(angle, magnitude float64) Vector2D {
	return Vector2D{X: magnitude * math.Cos(angle), Y: magnitude * math.Sin(angle)}
}

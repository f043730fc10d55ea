// pkg/physics/projectile.go
package physics

import "math"

// Gravity is the constant downward acceleration in m/s².
const Gravity = 9.81

// Position is a displacement in meters from the launch point, y positive upward.
type Position = Vector2D

// Parameters holds the launch conditions of a single kick.
type Parameters struct {
	InitialSpeed       float64 `json:"initialSpeed"`       // m/s
	LaunchAngleDegrees float64 `json:"launchAngleDegrees"` // degrees above horizontal
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// LaunchVelocity returns the initial velocity vector for the given speed and angle.
func LaunchVelocity(speed, angleDegrees float64) Vector2D {
	return FromAngle(DegreesToRadians(angleDegrees), speed)
}

// PositionAt returns the ball position t seconds after launch.
// Inputs are not validated. y goes negative once the ball is below launch height;
// callers use that as the landing signal. A ball kicked with zero speed rests at the origin.
func PositionAt(speed, angleDegrees, t float64) Position {
	if speed == 0 {
		return Position{}
	}
	v0 := LaunchVelocity(speed, angleDegrees)
	drop := Vector2D{Y: -0.5 * Gravity * t * t}
	return v0.Scale(t).Add(drop)
}

// MaxHeight returns the apex height vy0²/2g.
func MaxHeight(speed, angleDegrees float64) float64 {
	vy0 := LaunchVelocity(speed, angleDegrees).Y
	return vy0 * vy0 / (2 * Gravity)
}

// Range returns the horizontal distance covered when the ball returns to launch height.
func Range(speed, angleDegrees float64) float64 {
	return speed * speed * math.Sin(2*DegreesToRadians(angleDegrees)) / Gravity
}

// FlightTime returns the time the ball needs to return to launch height.
func FlightTime(speed, angleDegrees float64) float64 {
	vy0 := LaunchVelocity(speed, angleDegrees).Y
	return 2 * vy0 / Gravity
}

// LaunchVelocity returns the initial velocity vector for these parameters.
func (p Parameters) LaunchVelocity() Vector2D {
	return LaunchVelocity(p.InitialSpeed, p.LaunchAngleDegrees)
}

// Position returns the ball position t seconds after launch.
func (p Parameters) Position(t float64) Position {
	return PositionAt(p.InitialSpeed, p.LaunchAngleDegrees, t)
}

// MaxHeight returns the apex height for these parameters.
func (p Parameters) MaxHeight() float64 {
	return MaxHeight(p.InitialSpeed, p.LaunchAngleDegrees)
}

// Range returns the horizontal range for these parameters.
func (p Parameters) Range() float64 {
	return Range(p.InitialSpeed, p.LaunchAngleDegrees)
}

// FlightTime returns the total flight time for these parameters.
func (p Parameters) FlightTime() float64 {
	return FlightTime(p.InitialSpeed, p.LaunchAngleDegrees)
}

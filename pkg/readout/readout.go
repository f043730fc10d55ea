// Package readout formats the quantities shown next to the trajectory.
package readout

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-parabola/pkg/physics"
)

// Readout is the set of values displayed after every tick.
// MaxHeight, Range and FlightTime always reflect the parameters passed to Compute;
// Elapsed is the clock of the current (or last) run.
type Readout struct {
	MaxHeight  float64 `json:"maxHeight"`
	Range      float64 `json:"range"`
	FlightTime float64 `json:"flightTime"`
	Elapsed    float64 `json:"elapsed"`
}

// Line is one labelled, formatted readout value.
type Line struct {
	Label string
	Value string
}

// Compute derives a Readout from the given parameters and elapsed seconds.
func Compute(p physics.Parameters, elapsed float64) Readout {
	return Readout{
		MaxHeight:  p.MaxHeight(),
		Range:      p.Range(),
		FlightTime: p.FlightTime(),
		Elapsed:    elapsed,
	}
}

// Meters formats a distance with two decimals and an "m" suffix.
func Meters(v float64) string {
	return fmt.Sprintf("%.2f m", v)
}

// Seconds formats a duration in seconds with two decimals and an "s" suffix.
func Seconds(v float64) string {
	return fmt.Sprintf("%.2f s", v)
}

// Lines returns the four display lines in presentation order.
func (r Readout) Lines() []Line {
	return []Line{
		{Label: "Max height", Value: Meters(r.MaxHeight)},
		{Label: "Range", Value: Meters(r.Range)},
		{Label: "Flight time", Value: Seconds(r.FlightTime)},
		{Label: "Elapsed", Value: Seconds(r.Elapsed)},
	}
}

// String renders the readout on one line, e.g. for a window title.
func (r Readout) String() string {
	lines := r.Lines()
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Label+": "+l.Value)
	}
	return strings.Join(parts, " | ")
}

// Controls formats the slider values, e.g. "Speed: 20 m/s | Angle: 45°".
func Controls(p physics.Parameters) string {
	return fmt.Sprintf("Speed: %.0f m/s | Angle: %.0f°", p.InitialSpeed, p.LaunchAngleDegrees)
}

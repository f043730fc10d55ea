package readout

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-parabola/pkg/physics"
)

func TestCompute_ConcreteScenario(t *testing.T) {
	r := Compute(physics.Parameters{InitialSpeed: 20, LaunchAngleDegrees: 45}, 1.234)

	want := []Line{
		{Label: "Max height", Value: "10.19 m"},
		{Label: "Range", Value: "40.77 m"},
		{Label: "Flight time", Value: "2.88 s"},
		{Label: "Elapsed", Value: "1.23 s"},
	}
	got := r.Lines()
	if len(got) != len(want) {
		t.Fatalf("Lines() returned %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		name     string
		format   func(float64) string
		value    float64
		expected string
	}{
		{"meters zero", Meters, 0, "0.00 m"},
		{"meters rounding", Meters, 40.7747, "40.77 m"},
		{"seconds rounding", Seconds, 2.8832, "2.88 s"},
		{"seconds whole", Seconds, 3, "3.00 s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format(tt.value); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompute_IdleParametersAreIndependentOfClock(t *testing.T) {
	p := physics.Parameters{InitialSpeed: 30, LaunchAngleDegrees: 60}
	a := Compute(p, 0)
	b := Compute(p, 5)
	if a.MaxHeight != b.MaxHeight || a.Range != b.Range || a.FlightTime != b.FlightTime {
		t.Error("derived quantities must not depend on elapsed time")
	}
}

func TestString(t *testing.T) {
	s := Compute(physics.Parameters{}, 0).String()
	for _, part := range []string{"Max height: 0.00 m", "Range: 0.00 m", "Flight time: 0.00 s", "Elapsed: 0.00 s"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}

func TestControls(t *testing.T) {
	got := Controls(physics.Parameters{InitialSpeed: 20, LaunchAngleDegrees: 45})
	if want := "Speed: 20 m/s | Angle: 45°"; got != want {
		t.Errorf("Controls() = %q, want %q", got, want)
	}
}

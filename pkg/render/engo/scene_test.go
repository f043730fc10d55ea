// pkg/render/engo/scene_test.go
package engo

import (
	"context"
	"strings"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/physics"
	"github.com/opd-ai/go-parabola/pkg/render"
	"github.com/opd-ai/go-parabola/pkg/readout"
)

// countingSink records shapes registered with the render system. Like
// common.RenderSystem it resolves the shader at registration time.
type countingSink struct {
	added   []*common.RenderComponent
	shaders []common.Shader
}

func (s *countingSink) Add(basic *ecs.BasicEntity, rc *common.RenderComponent, space *common.SpaceComponent) {
	s.added = append(s.added, rc)
	s.shaders = append(s.shaders, rc.Shader())
}

func wiredScene(t *testing.T) (*KickScene, *countingSink, *[]string, *int) {
	t.Helper()
	scene := NewKickScene(config.DefaultConfig(), nil)
	sink := &countingSink{}
	titles := []string{}
	quits := 0

	err := scene.wire(&ecs.World{}, sink, func() { quits++ }, func(s string) { titles = append(titles, s) })
	if err != nil {
		t.Fatalf("wire() error = %v", err)
	}
	return scene, sink, &titles, &quits
}

// TestKickScene_Type tests the Type method
func TestKickScene_Type(t *testing.T) {
	scene := NewKickScene(config.DefaultConfig(), nil)
	if scene.Type() != "KickScene" {
		t.Errorf("Type() = %q, want KickScene", scene.Type())
	}
	if scene.Simulation() != nil {
		t.Error("Simulation() should be nil before Setup")
	}
}

// TestKickScene_WireDrawsInitialScene tests that wiring renders the launch point
func TestKickScene_WireDrawsInitialScene(t *testing.T) {
	scene, sink, _, _ := wiredScene(t)

	if scene.Simulation() == nil {
		t.Fatal("simulation not wired")
	}
	if len(sink.added) != 3 {
		t.Errorf("shapes registered = %d, want ground, launcher and ball", len(sink.added))
	}
	if scene.surface.Visible() != 3 {
		t.Errorf("visible shapes = %d, want 3", scene.surface.Visible())
	}
}

// TestKickScene_KickRunsFrames tests the input, frame and HUD systems together
func TestKickScene_KickRunsFrames(t *testing.T) {
	scene, sink, titles, quits := wiredScene(t)
	sim := scene.Simulation()

	scene.hud.Update(0)
	if len(*titles) != 1 || !strings.HasPrefix((*titles)[0], "Projectile Motion - Speed: 20 m/s") {
		t.Fatalf("titles = %q", *titles)
	}
	scene.hud.Update(0)
	if len(*titles) != 1 {
		t.Error("unchanged HUD text should not reset the title")
	}

	scene.input.Apply(Actions{Kick: true, AngleSteps: 1})
	if !sim.Running() {
		t.Fatal("kick action did not start a run")
	}
	if got := sim.Parameters().LaunchAngleDegrees; got != 46 {
		t.Errorf("angle = %v, want 46", got)
	}

	scene.frames.Update(0)
	scene.hud.Update(0)
	if len(*titles) != 2 || !strings.Contains((*titles)[1], "Angle: 46°") {
		t.Errorf("titles after frame = %q", *titles)
	}
	if len(sink.added) != 3 {
		t.Errorf("frames should reuse pooled shapes, registered %d", len(sink.added))
	}

	scene.input.Apply(Actions{Quit: true})
	if *quits != 1 {
		t.Errorf("quit called %d times, want 1", *quits)
	}

	scene.Exit()
	if scene.currentSurface() != nil {
		t.Error("surface should be gone after Exit")
	}
	if sim.Running() || sim.Frames.Pending() != 0 {
		t.Error("Exit should stop the run")
	}
}

// TestKickScene_InvalidConfig tests that wiring rejects a bad configuration
func TestKickScene_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitialSpeed = 99
	scene := NewKickScene(cfg, nil)

	if err := scene.wire(&ecs.World{}, &countingSink{}, func() {}, func(string) {}); err == nil {
		t.Error("wire() should fail for an out-of-range speed")
	}
}

type fakeTarget struct {
	speed, angle int
	kicks        int
}

func (f *fakeTarget) NudgeSpeed(steps int) physics.Parameters {
	f.speed += steps
	return physics.Parameters{}
}

func (f *fakeTarget) NudgeAngle(steps int) physics.Parameters {
	f.angle += steps
	return physics.Parameters{}
}

func (f *fakeTarget) Kick(context.Context) bool {
	f.kicks++
	return true
}

// TestInputSystem_Apply tests action dispatch
func TestInputSystem_Apply(t *testing.T) {
	tests := []struct {
		name      string
		actions   Actions
		wantSpeed int
		wantAngle int
		wantKicks int
		wantQuit  bool
	}{
		{"nothing", Actions{}, 0, 0, 0, false},
		{"angle down", Actions{AngleSteps: -1}, 0, -1, 0, false},
		{"speed up and kick", Actions{SpeedSteps: 1, Kick: true}, 1, 0, 1, false},
		{"quit wins", Actions{Quit: true, Kick: true, SpeedSteps: 1}, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{}
			quit := false
			is := NewInputSystem(target, func() { quit = true }, nil)
			is.Apply(tt.actions)

			if target.speed != tt.wantSpeed || target.angle != tt.wantAngle || target.kicks != tt.wantKicks {
				t.Errorf("target = %+v", target)
			}
			if quit != tt.wantQuit {
				t.Errorf("quit = %v, want %v", quit, tt.wantQuit)
			}
		})
	}
}

type staticReadable struct{}

func (staticReadable) Parameters() physics.Parameters {
	return physics.Parameters{InitialSpeed: 20, LaunchAngleDegrees: 45}
}

func (staticReadable) Readout() readout.Readout {
	return readout.Compute(physics.Parameters{InitialSpeed: 20, LaunchAngleDegrees: 45}, 0)
}

// TestHUDSystem_Text tests the title text
func TestHUDSystem_Text(t *testing.T) {
	hud := NewHUDSystem(staticReadable{}, "", func(string) {})
	want := "Speed: 20 m/s | Angle: 45° | Max height: 10.19 m | Range: 40.77 m | Flight time: 2.88 s | Elapsed: 0.00 s"
	if got := hud.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

var _ render.Surface = (*EngoSurface)(nil)

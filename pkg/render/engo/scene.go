// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/logging"
	"github.com/opd-ai/go-parabola/pkg/render"
	"github.com/opd-ai/go-parabola/pkg/simulation"
)

// KickScene hosts the simulation in an engo window.
type KickScene struct {
	cfg    *config.Config
	logger *logging.Logger
	opts   []simulation.Option

	sim     *simulation.Simulation
	surface *EngoSurface
	hud     *HUDSystem
	input   *InputSystem
	frames  *FrameSystem
}

// NewKickScene creates the scene; wiring happens in Setup.
func NewKickScene(cfg *config.Config, logger *logging.Logger, opts ...simulation.Option) *KickScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &KickScene{cfg: cfg, logger: logger, opts: opts}
}

// Type returns the scene type (required by Engo)
func (scene *KickScene) Type() string {
	return "KickScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *KickScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *KickScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(context.Background(), "engo setup failed", fmt.Errorf("unexpected updater %T", u))
		engo.Exit()
		return
	}

	common.SetBackground(render.DefaultPalette().Sky)
	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	SetupInputBindings()

	if err := scene.wire(world, renderSystem, nil, nil); err != nil {
		scene.logger.Error(context.Background(), "engo setup failed", err)
		engo.Exit()
	}
}

// wire builds the simulation and adds the frame, input and HUD systems.
func (scene *KickScene) wire(world *ecs.World, sink shapeSink, quit func(), setTitle func(string)) error {
	scene.surface = NewEngoSurface(sink)
	sim, err := simulation.New(scene.cfg, scene.currentSurface, scene.logger, scene.opts...)
	if err != nil {
		return fmt.Errorf("engo scene: %w", err)
	}
	scene.sim = sim

	scene.frames = NewFrameSystem(sim.Frames)
	scene.input = NewInputSystem(sim.Controls, quit, scene.logger)
	scene.hud = NewHUDSystem(sim, scene.cfg.Window.Title, setTitle)

	world.AddSystem(scene.frames)
	world.AddSystem(scene.input)
	world.AddSystem(scene.hud)

	scene.logger.Info(context.Background(), "engo scene ready",
		"width", scene.cfg.Window.Width,
		"height", scene.cfg.Window.Height,
	)
	return nil
}

// Exit is called by engo when the window closes.
func (scene *KickScene) Exit() {
	scene.surface = nil
	if scene.sim != nil {
		scene.sim.Close()
	}
}

// Simulation returns the wired simulation, nil before Setup.
func (scene *KickScene) Simulation() *simulation.Simulation {
	return scene.sim
}

// currentSurface yields nil once the window is gone.
func (scene *KickScene) currentSurface() render.Surface {
	if scene.surface == nil {
		return nil
	}
	return scene.surface
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *logging.Logger, opts ...simulation.Option) {
	engo.Run(engo.RunOptions{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		FPSLimit:     cfg.FrameRate,
		NotResizable: true,
	}, NewKickScene(cfg, logger, opts...))
}

// Package simulation assembles the controls, driver, scene and event bus
// into one unit that a host can drive.
package simulation

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/control"
	"github.com/opd-ai/go-parabola/pkg/engine"
	"github.com/opd-ai/go-parabola/pkg/event"
	"github.com/opd-ai/go-parabola/pkg/logging"
	"github.com/opd-ai/go-parabola/pkg/physics"
	"github.com/opd-ai/go-parabola/pkg/readout"
	"github.com/opd-ai/go-parabola/pkg/render"
	"github.com/opd-ai/go-parabola/pkg/scheduler"
)

// Simulation is a fully wired kick simulator. Hosts pump Frames once per
// frame and call Kick and the Controls from their input handling.
type Simulation struct {
	Config   *config.Config
	Logger   *logging.Logger
	Bus      *event.Bus
	Controls *control.Controls
	Frames   *scheduler.FrameScheduler
	Scene    *render.Scene
	Driver   *engine.Driver

	paramsSub *event.Subscription
}

// Option customizes a Simulation before it is wired.
type Option func(*options)

type options struct {
	clock engine.Clock
	bus   *event.Bus
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c engine.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithBus shares an existing event bus.
func WithBus(b *event.Bus) Option {
	return func(o *options) { o.bus = b }
}

// New wires a simulation for cfg drawing onto the surface returned by surface.
// The initial scene (ball at the launch point) is rendered before New returns.
func New(cfg *config.Config, surface engine.SurfaceProvider, logger *logging.Logger, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("simulation: %w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if surface == nil {
		surface = engine.StaticSurface(nil)
	}

	o := options{clock: engine.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bus == nil {
		o.bus = event.NewEventBus()
	}

	s := &Simulation{
		Config: cfg,
		Logger: logger,
		Bus:    o.bus,
		Frames: scheduler.NewFrameScheduler(),
		Scene:  render.NewScene(cfg.Layout),
	}
	s.Controls = control.NewControls(physics.Parameters{
		InitialSpeed:       cfg.InitialSpeed,
		LaunchAngleDegrees: cfg.LaunchAngle,
	}, s.Bus, logger)
	s.Driver = engine.NewDriver(s.Controls, s.Frames, s.Scene, surface, engine.Options{
		ParameterMode:    cfg.ParameterMode,
		MaxFlightSeconds: cfg.MaxFlightSeconds,
		Clock:            o.clock,
		Bus:              s.Bus,
		Logger:           logger,
	})
	s.Controls.Bind(s.Driver)
	s.paramsSub = s.Bus.Subscribe(event.ParametersChanged, func(e event.Event) {
		if e.GetSource() == s.Controls {
			s.Redraw()
		}
	})
	s.Driver.ShowIdle()

	logger.Debug(context.Background(), "simulation wired",
		"speed", cfg.InitialSpeed,
		"angle", cfg.LaunchAngle,
		"mode", cfg.ParameterMode,
	)
	return s, nil
}

// Kick starts a run unless one is already in progress.
func (s *Simulation) Kick(ctx context.Context) bool {
	return s.Controls.Kick(ctx)
}

// Running reports whether a kick is in flight.
func (s *Simulation) Running() bool {
	return s.Driver.State() == engine.Running
}

// Parameters returns the current control values.
func (s *Simulation) Parameters() physics.Parameters {
	return s.Controls.Parameters()
}

// Readout returns the derived quantities for the current parameters and run clock.
func (s *Simulation) Readout() readout.Readout {
	return s.Driver.Readout()
}

// Redraw renders the launch point when idle and does nothing while a run is
// drawing its own frames. It runs after every parameter change.
func (s *Simulation) Redraw() {
	if s.Running() {
		return
	}
	s.Driver.ShowIdle()
}

// Close stops any run, releases the frame scheduler and stops listening for
// parameter changes.
func (s *Simulation) Close() {
	s.paramsSub.Cancel()
	s.Driver.Close()
}

// Package engine drives a kick: it samples the trajectory against the wall
// clock once per frame, renders each sample and stops when the ball lands.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/event"
	"github.com/opd-ai/go-parabola/pkg/logging"
	"github.com/opd-ai/go-parabola/pkg/physics"
	"github.com/opd-ai/go-parabola/pkg/readout"
	"github.com/opd-ai/go-parabola/pkg/render"
	"github.com/opd-ai/go-parabola/pkg/scheduler"
)

// RunState is the driver's state machine.
type RunState int

const (
	Idle RunState = iota
	Running
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Reasons a run ends, reported in RunEnded events.
const (
	ReasonLanded      = "landed"
	ReasonAtRest      = "at_rest"
	ReasonFlightLimit = "flight_limit"
	ReasonNoSurface   = "no_surface"
)

// ErrNoSurface is logged when a tick finds no drawing surface.
var ErrNoSurface = errors.New("drawing surface unavailable")

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FrameRequester schedules callbacks for the next frame. *scheduler.FrameScheduler implements it.
type FrameRequester interface {
	RequestFrame(cb scheduler.Callback) scheduler.Handle
	Cancel(h scheduler.Handle) bool
}

// ParameterSource supplies the current launch parameters. *control.Controls implements it.
type ParameterSource interface {
	Parameters() physics.Parameters
}

// SurfaceProvider returns the surface to draw on, or nil once the view is gone.
type SurfaceProvider func() render.Surface

// StaticSurface returns a provider that always yields s.
func StaticSurface(s render.Surface) SurfaceProvider {
	return func() render.Surface { return s }
}

// SimulationClock tracks the current run's start and elapsed seconds.
type SimulationClock struct {
	StartTimestamp time.Time
	ElapsedSeconds float64
}

// Options tunes driver behavior.
type Options struct {
	// ParameterMode is config.ModeLive or config.ModeSnapshot.
	ParameterMode string

	// MaxFlightSeconds ends a run that has not landed after this long.
	MaxFlightSeconds float64

	Clock  Clock
	Bus    *event.Bus
	Logger *logging.Logger
}

// Driver runs at most one kick at a time. All methods must be called from the
// goroutine that runs frames; ticks are never concurrent.
type Driver struct {
	params  ParameterSource
	frames  FrameRequester
	scene   *render.Scene
	surface SurfaceProvider

	clock     Clock
	bus       *event.Bus
	logger    *logging.Logger
	mode      string
	maxFlight float64

	state    RunState
	closed   bool
	pending  scheduler.Handle
	simClock SimulationClock
	snapshot physics.Parameters
	runCtx   context.Context
	runID    string
	ticks    uint64
	last     physics.Position
}

// NewDriver creates an idle driver.
func NewDriver(params ParameterSource, frames FrameRequester, scene *render.Scene, surface SurfaceProvider, opts Options) *Driver {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Bus == nil {
		opts.Bus = event.NewEventBus()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.ParameterMode == "" {
		opts.ParameterMode = config.ModeLive
	}
	if opts.MaxFlightSeconds <= 0 {
		opts.MaxFlightSeconds = config.DefaultConfig().MaxFlightSeconds
	}

	return &Driver{
		params:    params,
		frames:    frames,
		scene:     scene,
		surface:   surface,
		clock:     opts.Clock,
		bus:       opts.Bus,
		logger:    opts.Logger,
		mode:      opts.ParameterMode,
		maxFlight: opts.MaxFlightSeconds,
		runCtx:    context.Background(),
	}
}

// ShowIdle draws the scene with the ball at the launch point.
func (d *Driver) ShowIdle() {
	if d.closed {
		return
	}
	if s := d.surface(); s != nil {
		d.scene.Render(s, physics.Position{})
	}
}

// Start begins a run and samples the first position immediately.
// It returns false, changing nothing, if a run is already active or the
// driver has been closed.
func (d *Driver) Start(ctx context.Context) bool {
	if d.closed {
		d.logger.Debug(ctx, "start ignored: driver closed")
		return false
	}
	if d.state == Running {
		d.logger.Debug(d.runCtx, "start ignored: run in progress")
		return false
	}

	d.runID = logging.GenerateRunID()
	d.runCtx = logging.WithRunID(ctx, d.runID)
	d.simClock = SimulationClock{StartTimestamp: d.clock.Now()}
	d.snapshot = d.params.Parameters()
	d.ticks = 0
	d.last = physics.Position{}
	d.state = Running

	d.logger.Info(d.runCtx, "kick started",
		"speed", d.snapshot.InitialSpeed,
		"angle", d.snapshot.LaunchAngleDegrees,
		"mode", d.mode,
	)
	d.bus.Publish(event.NewRunEvent(event.RunStarted, d, d.runID, d.snapshot))

	d.tick(d.simClock.StartTimestamp)
	return true
}

// Close cancels any pending frame and disables the driver. No tick runs after
// Close returns.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.cancelPending()
	if d.state == Running {
		d.logger.Info(d.runCtx, "run abandoned on close", "elapsed", d.simClock.ElapsedSeconds)
	}
	d.state = Idle
}

// State returns the current run state.
func (d *Driver) State() RunState { return d.state }

// Clock returns the current (or last) run's clock.
func (d *Driver) Clock() SimulationClock { return d.simClock }

// Ticks returns the number of samples published in the current (or last) run.
func (d *Driver) Ticks() uint64 { return d.ticks }

// LastPosition returns the most recently published position.
func (d *Driver) LastPosition() physics.Position { return d.last }

// RunID returns the ID of the current (or last) run.
func (d *Driver) RunID() string { return d.runID }

// Readout returns the display values for the current parameters and run clock.
func (d *Driver) Readout() readout.Readout {
	return readout.Compute(d.params.Parameters(), d.simClock.ElapsedSeconds)
}

func (d *Driver) tick(time.Time) {
	d.pending = 0
	if d.closed || d.state != Running {
		return
	}

	surface := d.surface()
	if surface == nil {
		d.logger.Error(d.runCtx, "tick aborted", ErrNoSurface, "tick", d.ticks)
		d.finish(ReasonNoSurface)
		return
	}

	elapsed := d.clock.Now().Sub(d.simClock.StartTimestamp).Seconds()
	if elapsed < d.simClock.ElapsedSeconds {
		// never render an earlier time than a previous tick
		elapsed = d.simClock.ElapsedSeconds
	}
	d.simClock.ElapsedSeconds = elapsed

	current := d.params.Parameters()
	flight := d.flightParameters(current)
	pos := flight.Position(elapsed)

	d.scene.Render(surface, pos)
	d.ticks++
	d.last = pos
	d.bus.Publish(event.NewTickEvent(d, d.runID, d.ticks, elapsed, pos, readout.Compute(current, elapsed)))

	switch {
	case pos.Y < 0:
		d.finish(ReasonLanded)
	case flight.InitialSpeed == 0 && elapsed > 0:
		d.finish(ReasonAtRest)
	case elapsed >= d.maxFlight:
		d.finish(ReasonFlightLimit)
	default:
		d.pending = d.frames.RequestFrame(d.tick)
	}
}

func (d *Driver) finish(reason string) {
	d.cancelPending()
	d.state = Idle

	d.logger.Info(d.runCtx, "kick ended",
		"reason", reason,
		"elapsed", d.simClock.ElapsedSeconds,
		"ticks", d.ticks,
		"x", d.last.X,
		"y", d.last.Y,
	)

	ev := event.NewRunEvent(event.RunEnded, d, d.runID, d.flightParameters(d.params.Parameters()))
	ev.Elapsed = d.simClock.ElapsedSeconds
	ev.Ticks = d.ticks
	ev.Reason = reason
	d.bus.Publish(ev)
}

// flightParameters returns the parameters the ball flies with: the snapshot
// taken at Start in snapshot mode, otherwise current.
func (d *Driver) flightParameters(current physics.Parameters) physics.Parameters {
	if d.mode == config.ModeSnapshot {
		return d.snapshot
	}
	return current
}

func (d *Driver) cancelPending() {
	if d.pending != 0 {
		d.frames.Cancel(d.pending)
		d.pending = 0
	}
}

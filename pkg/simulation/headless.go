package simulation

import (
	"context"
	"errors"

	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/engine"
	"github.com/opd-ai/go-parabola/pkg/event"
	"github.com/opd-ai/go-parabola/pkg/logging"
	"github.com/opd-ai/go-parabola/pkg/physics"
	"github.com/opd-ai/go-parabola/pkg/readout"
	"github.com/opd-ai/go-parabola/pkg/render"
	"github.com/opd-ai/go-parabola/pkg/scheduler"
)

// ErrNotStarted is returned when the headless kick could not start.
var ErrNotStarted = errors.New("kick did not start")

// Result summarizes one finished kick.
type Result struct {
	RunID        string
	Reason       string
	Ticks        uint64
	Elapsed      float64
	LastPosition physics.Position
	Readout      readout.Readout

	// Carry is the straight-line distance in meters from the launch point
	// to the last sampled position.
	Carry float64
}

// RunHeadless kicks once on a NullSurface, pumps frames at cfg.FrameRate and
// returns when the ball lands or ctx is done.
func RunHeadless(ctx context.Context, cfg *config.Config, logger *logging.Logger, opts ...Option) (Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	surface := render.NewNullSurface(logger)
	sim, err := New(cfg, engine.StaticSurface(surface), logger, opts...)
	if err != nil {
		return Result{}, err
	}
	defer sim.Close()

	var ended *event.RunEvent
	sub := sim.Bus.Subscribe(event.RunEnded, func(e event.Event) {
		if re, ok := e.(*event.RunEvent); ok {
			ended = re
		}
	})
	defer sub.Cancel()

	if !sim.Kick(ctx) {
		return Result{}, ErrNotStarted
	}

	loop := scheduler.NewLoop(sim.Frames, cfg.FrameRate, logger)
	if sim.Running() {
		if err := loop.Run(ctx, func() bool { return !sim.Running() }); err != nil {
			return sim.result(ended), logging.WrapError(err, "headless run %s interrupted", sim.Driver.RunID())
		}
	}

	res := sim.result(ended)
	logger.Info(logging.WithRunID(ctx, res.RunID), "headless run finished",
		"reason", res.Reason,
		"ticks", res.Ticks,
		"elapsed", res.Elapsed,
		"max_height", res.Readout.MaxHeight,
		"range", res.Readout.Range,
		"carry", res.Carry,
	)
	return res, nil
}

func (s *Simulation) result(ended *event.RunEvent) Result {
	res := Result{
		RunID:        s.Driver.RunID(),
		Ticks:        s.Driver.Ticks(),
		Elapsed:      s.Driver.Clock().ElapsedSeconds,
		LastPosition: s.Driver.LastPosition(),
		Readout:      s.Readout(),
	}
	res.Carry = res.LastPosition.Distance(physics.Origin)
	if ended != nil {
		res.Reason = ended.Reason
	}
	return res
}

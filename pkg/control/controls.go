// Package control holds the user-adjustable launch parameters.
package control

import (
	"context"
	"math"
	"sync"

	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/event"
	"github.com/opd-ai/go-parabola/pkg/logging"
	"github.com/opd-ai/go-parabola/pkg/physics"
)

// Step is the increment applied by one nudge of a control.
const Step = 1.0

// Starter begins a kick. *engine.Driver implements it.
type Starter interface {
	Start(ctx context.Context) bool
}

// Controls owns the current speed and angle. Values are always clamped to
// [config.MinSpeed, config.MaxSpeed] and [config.MinAngle, config.MaxAngle],
// so the physics model never sees out-of-range input.
// Controls is safe for concurrent use.
type Controls struct {
	mu      sync.RWMutex
	params  physics.Parameters
	starter Starter
	bus     *event.Bus
	logger  *logging.Logger
}

// NewControls creates controls starting at initial (clamped).
// bus may be nil when nobody observes parameter changes.
func NewControls(initial physics.Parameters, bus *event.Bus, logger *logging.Logger) *Controls {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controls{
		params: clampParameters(initial),
		bus:    bus,
		logger: logger,
	}
}

// Parameters returns the current parameters.
func (c *Controls) Parameters() physics.Parameters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params
}

// SetSpeed sets the initial speed, clamped to its range.
func (c *Controls) SetSpeed(speed float64) physics.Parameters {
	return c.update(func(p *physics.Parameters) {
		p.InitialSpeed = Clamp(speed, config.MinSpeed, config.MaxSpeed)
	})
}

// SetAngle sets the launch angle, clamped to its range.
func (c *Controls) SetAngle(angle float64) physics.Parameters {
	return c.update(func(p *physics.Parameters) {
		p.LaunchAngleDegrees = Clamp(angle, config.MinAngle, config.MaxAngle)
	})
}

// NudgeSpeed moves the speed by steps increments, snapping to whole units.
func (c *Controls) NudgeSpeed(steps int) physics.Parameters {
	return c.update(func(p *physics.Parameters) {
		p.InitialSpeed = Clamp(math.Round(p.InitialSpeed)+float64(steps)*Step, config.MinSpeed, config.MaxSpeed)
	})
}

// NudgeAngle moves the angle by steps increments, snapping to whole degrees.
func (c *Controls) NudgeAngle(steps int) physics.Parameters {
	return c.update(func(p *physics.Parameters) {
		p.LaunchAngleDegrees = Clamp(math.Round(p.LaunchAngleDegrees)+float64(steps)*Step, config.MinAngle, config.MaxAngle)
	})
}

// Bind sets the target of Kick.
func (c *Controls) Bind(s Starter) {
	c.mu.Lock()
	c.starter = s
	c.mu.Unlock()
}

// Kick forwards a start trigger. It reports whether a run started; a kick
// while a run is in progress, or before Bind, is ignored.
func (c *Controls) Kick(ctx context.Context) bool {
	c.mu.RLock()
	s := c.starter
	c.mu.RUnlock()

	if s == nil {
		c.logger.Warn(ctx, "kick ignored: no driver bound")
		return false
	}
	return s.Start(ctx)
}

func (c *Controls) update(apply func(p *physics.Parameters)) physics.Parameters {
	c.mu.Lock()
	before := c.params
	apply(&c.params)
	after := c.params
	c.mu.Unlock()

	if after != before {
		c.logger.Debug(context.Background(), "parameters changed",
			"speed", after.InitialSpeed,
			"angle", after.LaunchAngleDegrees,
		)
		if c.bus != nil {
			c.bus.Publish(event.NewParametersEvent(c, after))
		}
	}
	return after
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampParameters(p physics.Parameters) physics.Parameters {
	return physics.Parameters{
		InitialSpeed:       Clamp(p.InitialSpeed, config.MinSpeed, config.MaxSpeed),
		LaunchAngleDegrees: Clamp(p.LaunchAngleDegrees, config.MinAngle, config.MaxAngle),
	}
}

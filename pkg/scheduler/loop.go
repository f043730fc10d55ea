package scheduler

import (
	"context"
	"time"

	"github.com/opd-ai/go-parabola/pkg/logging"
)

// DefaultFrameRate is the cadence used when none is configured.
const DefaultFrameRate = 60

// Interval converts a frame rate in Hz into a tick interval.
// Non-positive rates fall back to DefaultFrameRate.
func Interval(frameRate int) time.Duration {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return time.Second / time.Duration(frameRate)
}

// Loop pumps a FrameScheduler from a ticker until its context is cancelled.
type Loop struct {
	frames   *FrameScheduler
	interval time.Duration
	logger   *logging.Logger
}

// NewLoop creates a loop running frames at the given rate.
func NewLoop(frames *FrameScheduler, frameRate int, logger *logging.Logger) *Loop {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loop{
		frames:   frames,
		interval: Interval(frameRate),
		logger:   logger,
	}
}

// Run blocks, running one frame per tick. idle is consulted after every frame;
// when it returns true the loop exits with a nil error. A cancelled context
// returns ctx.Err().
func (l *Loop) Run(ctx context.Context, idle func() bool) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug(ctx, "frame loop started", "interval_ms", l.interval.Milliseconds())
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug(ctx, "frame loop cancelled", "frames", l.frames.Frames())
			return ctx.Err()
		case now := <-ticker.C:
			l.frames.RunFrame(now)
			if idle != nil && idle() {
				l.logger.Debug(ctx, "frame loop idle", "frames", l.frames.Frames())
				return nil
			}
		}
	}
}

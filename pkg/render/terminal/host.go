package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/engine"
	"github.com/opd-ai/go-parabola/pkg/logging"
	"github.com/opd-ai/go-parabola/pkg/readout"
	"github.com/opd-ai/go-parabola/pkg/scheduler"
	"github.com/opd-ai/go-parabola/pkg/simulation"
)

// HelpText is shown on the bottom line.
const HelpText = "Space kick  ←/→ angle  ↑/↓ speed  q quit"

// statusRows are reserved below the canvas.
const statusRows = 2

// Host owns a tcell screen, pumps frames from a ticker and maps keys to the
// controls.
type Host struct {
	screen    tcell.Screen
	sim       *simulation.Simulation
	canvas    *Canvas
	frameRate int
	logger    *logging.Logger
}

// NewHost wires a simulation that draws onto screen. The screen must already
// be initialized; the caller finalizes it after Run returns.
func NewHost(screen tcell.Screen, cfg *config.Config, logger *logging.Logger, opts ...simulation.Option) (*Host, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	canvas := NewCanvas(cfg.Layout)
	sim, err := simulation.New(cfg, engine.StaticSurface(canvas), logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("terminal host: %w", err)
	}
	return &Host{
		screen:    screen,
		sim:       sim,
		canvas:    canvas,
		frameRate: cfg.FrameRate,
		logger:    logger,
	}, nil
}

// Simulation returns the wired simulation.
func (h *Host) Simulation() *simulation.Simulation { return h.sim }

// Run processes input and frames until the user quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	defer h.sim.Close()

	ticker := time.NewTicker(scheduler.Interval(h.frameRate))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	h.Draw()
	h.logger.Info(ctx, "terminal host started", "frame_rate", h.frameRate)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !h.HandleEvent(ctx, ev) {
				h.logger.Info(ctx, "terminal host quit")
				return nil
			}
			h.Draw()

		case now := <-ticker.C:
			h.sim.Frames.RunFrame(now)
			h.Draw()
		}
	}
}

// HandleEvent applies one input event. It returns false when the user quits.
func (h *Host) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			h.sim.Controls.NudgeAngle(-1)
		case tcell.KeyRight:
			h.sim.Controls.NudgeAngle(1)
		case tcell.KeyUp:
			h.sim.Controls.NudgeSpeed(1)
		case tcell.KeyDown:
			h.sim.Controls.NudgeSpeed(-1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				if !h.sim.Kick(ctx) {
					h.logger.Debug(ctx, "kick ignored while running")
				}
			}
		}

	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// Draw repaints the canvas and the status lines.
func (h *Host) Draw() {
	h.screen.Clear()
	w, hgt := h.screen.Size()

	canvasRows := hgt - statusRows
	if canvasRows < 1 {
		canvasRows = hgt
	}
	h.canvas.Present(h.screen, 0, 0, w, canvasRows)

	if hgt > canvasRows {
		status := readout.Controls(h.sim.Controls.Parameters()) + " | " + h.sim.Readout().String()
		drawText(h.screen, 0, canvasRows, w, status, tcell.StyleDefault.Bold(true))
		drawText(h.screen, 0, canvasRows+1, w, HelpText, tcell.StyleDefault.Dim(true))
	}
	h.screen.Show()
}

func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			return
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
}

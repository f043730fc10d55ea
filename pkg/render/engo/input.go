// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-parabola/pkg/logging"
	"github.com/opd-ai/go-parabola/pkg/physics"
)

// Button names registered by SetupInputBindings.
const (
	ButtonKick      = "kick"
	ButtonAngleUp   = "angleUp"
	ButtonAngleDown = "angleDown"
	ButtonSpeedUp   = "speedUp"
	ButtonSpeedDown = "speedDown"
	ButtonQuit      = "quit"
)

// Target receives the actions decoded from input. *control.Controls implements it.
type Target interface {
	NudgeSpeed(steps int) physics.Parameters
	NudgeAngle(steps int) physics.Parameters
	Kick(ctx context.Context) bool
}

// Actions is the input of one frame.
type Actions struct {
	Kick       bool
	AngleSteps int
	SpeedSteps int
	Quit       bool
}

// InputSystem turns key presses into control changes.
type InputSystem struct {
	target Target
	quit   func()
	logger *logging.Logger
}

// NewInputSystem creates an input system. quit is called when the quit key is
// pressed; nil means engo.Exit.
func NewInputSystem(target Target, quit func(), logger *logging.Logger) *InputSystem {
	if quit == nil {
		quit = engo.Exit
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &InputSystem{target: target, quit: quit, logger: logger}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads this frame's key presses.
func (is *InputSystem) Update(dt float32) {
	is.Apply(readActions())
}

// Apply performs the actions.
func (is *InputSystem) Apply(a Actions) {
	if a.Quit {
		is.quit()
		return
	}
	if a.AngleSteps != 0 {
		is.target.NudgeAngle(a.AngleSteps)
	}
	if a.SpeedSteps != 0 {
		is.target.NudgeSpeed(a.SpeedSteps)
	}
	if a.Kick {
		if !is.target.Kick(context.Background()) {
			is.logger.Debug(context.Background(), "kick ignored while running")
		}
	}
}

func readActions() Actions {
	var a Actions
	a.Kick = engo.Input.Button(ButtonKick).JustPressed()
	a.Quit = engo.Input.Button(ButtonQuit).JustPressed()
	if engo.Input.Button(ButtonAngleUp).JustPressed() {
		a.AngleSteps++
	}
	if engo.Input.Button(ButtonAngleDown).JustPressed() {
		a.AngleSteps--
	}
	if engo.Input.Button(ButtonSpeedUp).JustPressed() {
		a.SpeedSteps++
	}
	if engo.Input.Button(ButtonSpeedDown).JustPressed() {
		a.SpeedSteps--
	}
	return a
}

// SetupInputBindings registers the key bindings.
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonKick, engo.KeySpace)
	engo.Input.RegisterButton(ButtonAngleUp, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonAngleDown, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonSpeedUp, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonSpeedDown, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape, engo.KeyQ)
}

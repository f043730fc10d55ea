// pkg/render/engo/hud.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-parabola/pkg/physics"
	"github.com/opd-ai/go-parabola/pkg/readout"
)

// Readable supplies what the HUD shows.
type Readable interface {
	Parameters() physics.Parameters
	Readout() readout.Readout
}

// HUDSystem shows the controls and the readout in the window title.
type HUDSystem struct {
	source   Readable
	setTitle func(string)
	prefix   string
	current  string
}

// NewHUDSystem creates a HUD. setTitle nil means engo.SetTitle.
func NewHUDSystem(source Readable, prefix string, setTitle func(string)) *HUDSystem {
	if setTitle == nil {
		setTitle = engo.SetTitle
	}
	return &HUDSystem{source: source, prefix: prefix, setTitle: setTitle}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the title when the text changed.
func (hud *HUDSystem) Update(dt float32) {
	text := hud.Text()
	if text == hud.current {
		return
	}
	hud.current = text
	hud.setTitle(text)
}

// Text returns the title for the current state.
func (hud *HUDSystem) Text() string {
	text := readout.Controls(hud.source.Parameters()) + " | " + hud.source.Readout().String()
	if hud.prefix != "" {
		text = hud.prefix + " - " + text
	}
	return text
}

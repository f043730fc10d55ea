// pkg/render/engo/frames.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
)

// FramePump runs one scheduler frame. *scheduler.FrameScheduler implements it.
type FramePump interface {
	RunFrame(now time.Time) int
}

// FrameSystem runs queued frame callbacks once per engo update, before the
// render system draws.
type FrameSystem struct {
	frames FramePump
	now    func() time.Time
}

// NewFrameSystem creates a system pumping frames.
func NewFrameSystem(frames FramePump) *FrameSystem {
	return &FrameSystem{frames: frames, now: time.Now}
}

// Remove satisfies the ecs.System interface
func (fs *FrameSystem) Remove(basic ecs.BasicEntity) {}

// Update runs one frame.
func (fs *FrameSystem) Update(dt float32) {
	fs.frames.RunFrame(fs.now())
}

// Priority places the frame pump ahead of rendering.
func (fs *FrameSystem) Priority() int { return 10 }

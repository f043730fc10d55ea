package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/physics"
)

// TestDriverParameterRace runs frames while other goroutines move the
// controls, the way a GUI input thread would.
func TestDriverParameterRace(t *testing.T) {
	h := newHarness(t, physics.Parameters{InitialSpeed: 50, LaunchAngleDegrees: 80}, config.ModeLive)
	h.driver.Start(context.Background())

	var wg sync.WaitGroup
	done := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(dir int) {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					h.controls.NudgeAngle(dir)
					h.controls.NudgeSpeed(-dir)
					time.Sleep(100 * time.Microsecond)
				}
			}
		}(1 - 2*(i%2))
	}

	for i := 0; i < 200 && h.driver.State() == Running; i++ {
		h.step()
	}
	close(done)
	wg.Wait()

	for i := 1; i < len(h.ticks); i++ {
		if h.ticks[i].Elapsed < h.ticks[i-1].Elapsed {
			t.Fatalf("tick %d went back in time", i)
		}
	}
}

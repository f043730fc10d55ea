// Package scheduler provides the "run this before the next frame" primitive the
// animation driver is built on, plus a fixed-cadence loop to pump it when no host
// supplies frames of its own.
package scheduler

import (
	"sync"
	"time"
)

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

// Callback runs once, on the frame it was scheduled for.
type Callback func(now time.Time)

// FrameScheduler queues callbacks for the next frame.
//
// RunFrame executes only callbacks requested before it started; a callback that
// requests another frame is deferred to the following RunFrame. Cancel is
// synchronous: a cancelled callback never runs, even if its frame is already
// being executed.
type FrameScheduler struct {
	mu      sync.Mutex
	nextID  Handle
	pending map[Handle]Callback
	order   []Handle
	frames  uint64
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		nextID:  1,
		pending: make(map[Handle]Callback),
	}
}

// RequestFrame schedules cb for the next frame and returns its handle.
func (s *FrameScheduler) RequestFrame(cb Callback) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.nextID
	s.nextID++
	s.pending[h] = cb
	s.order = append(s.order, h)
	return h
}

// Cancel removes a pending request. It reports whether the request was still pending.
func (s *FrameScheduler) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[h]; !ok {
		return false
	}
	delete(s.pending, h)
	return true
}

// Pending returns the number of requests waiting for a frame.
func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Frames returns how many frames have been run.
func (s *FrameScheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// RunFrame executes the callbacks queued before the call, in request order,
// and returns how many ran. It must be called from a single goroutine.
func (s *FrameScheduler) RunFrame(now time.Time) int {
	s.mu.Lock()
	batch := s.order
	s.order = nil
	s.frames++
	s.mu.Unlock()

	ran := 0
	for _, h := range batch {
		s.mu.Lock()
		cb, ok := s.pending[h]
		delete(s.pending, h)
		s.mu.Unlock()

		if !ok {
			continue
		}
		cb(now)
		ran++
	}
	return ran
}

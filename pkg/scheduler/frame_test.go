package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFrameScheduler_RunsRequestsInOrder(t *testing.T) {
	s := NewFrameScheduler()
	var order []int

	s.RequestFrame(func(time.Time) { order = append(order, 1) })
	s.RequestFrame(func(time.Time) { order = append(order, 2) })

	if ran := s.RunFrame(time.Now()); ran != 2 {
		t.Errorf("RunFrame() ran %d callbacks, want 2", ran)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("callbacks ran in order %v, want [1 2]", order)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after frame, want 0", s.Pending())
	}
}

func TestFrameScheduler_RequestDuringFrameDefersToNextFrame(t *testing.T) {
	s := NewFrameScheduler()
	calls := 0

	var step Callback
	step = func(time.Time) {
		calls++
		s.RequestFrame(step)
	}
	s.RequestFrame(step)

	for i := 1; i <= 3; i++ {
		s.RunFrame(time.Now())
		if calls != i {
			t.Fatalf("after frame %d callbacks = %d, want %d", i, calls, i)
		}
	}
	if s.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", s.Frames())
	}
}

func TestFrameScheduler_CancelPreventsExecution(t *testing.T) {
	s := NewFrameScheduler()
	called := false

	h := s.RequestFrame(func(time.Time) { called = true })
	if !s.Cancel(h) {
		t.Error("Cancel() of a pending request returned false")
	}
	if s.Cancel(h) {
		t.Error("second Cancel() returned true")
	}

	s.RunFrame(time.Now())
	if called {
		t.Error("cancelled callback executed")
	}
}

func TestFrameScheduler_CancelInsideSameFrame(t *testing.T) {
	s := NewFrameScheduler()
	secondRan := false

	var second Handle
	s.RequestFrame(func(time.Time) { s.Cancel(second) })
	second = s.RequestFrame(func(time.Time) { secondRan = true })

	if ran := s.RunFrame(time.Now()); ran != 1 {
		t.Errorf("RunFrame() ran %d callbacks, want 1", ran)
	}
	if secondRan {
		t.Error("callback cancelled earlier in the same frame still executed")
	}
}

func TestFrameScheduler_PassesFrameTime(t *testing.T) {
	s := NewFrameScheduler()
	frameTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var got time.Time

	s.RequestFrame(func(now time.Time) { got = now })
	s.RunFrame(frameTime)

	if !got.Equal(frameTime) {
		t.Errorf("callback received %v, want %v", got, frameTime)
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		expected time.Duration
	}{
		{"sixty", 60, time.Second / 60},
		{"thirty", 30, time.Second / 30},
		{"zero falls back", 0, time.Second / DefaultFrameRate},
		{"negative falls back", -5, time.Second / DefaultFrameRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interval(tt.rate); got != tt.expected {
				t.Errorf("Interval(%d) = %v, want %v", tt.rate, got, tt.expected)
			}
		})
	}
}

func TestLoop_StopsWhenIdle(t *testing.T) {
	s := NewFrameScheduler()
	remaining := 3
	var step Callback
	step = func(time.Time) {
		remaining--
		if remaining > 0 {
			s.RequestFrame(step)
		}
	}
	s.RequestFrame(step)

	loop := NewLoop(s, 500, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := loop.Run(ctx, func() bool { return s.Pending() == 0 })
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
}

func TestLoop_ContextCancellation(t *testing.T) {
	loop := NewLoop(NewFrameScheduler(), 500, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

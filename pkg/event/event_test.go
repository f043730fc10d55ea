// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/opd-ai/go-parabola/pkg/physics"
	"github.com/opd-ai/go-parabola/pkg/readout"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{name: "RunStarted event", eventType: RunStarted, source: "driver"},
		{name: "TickSampled event", eventType: TickSampled, source: 123},
		{name: "Empty source", eventType: RunEnded, source: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}
			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_MultipleHandlers_UniqueIDs(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(TickSampled, func(e Event) {})
	sub2 := bus.Subscribe(TickSampled, func(e Event) {})
	_ = bus.Subscribe(RunEnded, func(e Event) {})

	if sub1.ID == 0 || sub1.ID == sub2.ID {
		t.Errorf("subscriptions should have unique non-zero IDs, got %d and %d", sub1.ID, sub2.ID)
	}

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	if len(bus.handlers[TickSampled]) != 2 {
		t.Errorf("expected 2 handlers for TickSampled, got %d", len(bus.handlers[TickSampled]))
	}
	if len(bus.handlers[RunEnded]) != 1 {
		t.Errorf("expected 1 handler for RunEnded, got %d", len(bus.handlers[RunEnded]))
	}
}

func TestBusPublish_WithSubscribers_CallsAllHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []int

	bus.Subscribe(RunStarted, func(e Event) { calls = append(calls, 1) })
	bus.Subscribe(RunStarted, func(e Event) { calls = append(calls, 2) })
	bus.Subscribe(RunEnded, func(e Event) { calls = append(calls, 3) })

	bus.Publish(&BaseEvent{EventType: RunStarted})

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("expected handlers [1 2] in order, got %v", calls)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: TickSampled})
}

func TestSubscriptionCancel_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	sub := bus.Subscribe(TickSampled, func(e Event) { first++ })
	bus.Subscribe(TickSampled, func(e Event) { second++ })

	sub.Cancel()
	bus.Publish(&BaseEvent{EventType: TickSampled})

	if first != 0 {
		t.Errorf("cancelled handler called %d times", first)
	}
	if second != 1 {
		t.Errorf("remaining handler called %d times, want 1", second)
	}

	// cancelling twice is harmless
	sub.Cancel()
}

func TestSubscriptionCancel_DuringPublish(t *testing.T) {
	bus := NewEventBus()
	var sub *Subscription
	var later int

	sub = bus.Subscribe(RunEnded, func(e Event) { sub.Cancel() })
	bus.Subscribe(RunEnded, func(e Event) { later++ })

	bus.Publish(&BaseEvent{EventType: RunEnded})
	if later != 1 {
		t.Errorf("handler after a self-cancelling handler called %d times, want 1", later)
	}
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe(TickSampled, func(e Event) {})
		}()
	}
	wg.Wait()

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	if len(bus.handlers[TickSampled]) != 50 {
		t.Errorf("expected 50 handlers, got %d", len(bus.handlers[TickSampled]))
	}
}

func TestNewTickEvent_CarriesSample(t *testing.T) {
	params := physics.Parameters{InitialSpeed: 20, LaunchAngleDegrees: 45}
	pos := params.Position(1)
	r := readout.Compute(params, 1)

	ev := NewTickEvent("driver", "run-1", 7, 1, pos, r)

	if ev.GetType() != TickSampled {
		t.Errorf("GetType() = %v, want %v", ev.GetType(), TickSampled)
	}
	if ev.Tick != 7 || ev.Elapsed != 1 || ev.Position != pos || ev.Readout != r || ev.RunID != "run-1" {
		t.Errorf("unexpected tick event contents: %+v", ev)
	}
}

func TestNewRunEvent_And_ParametersEvent(t *testing.T) {
	params := physics.Parameters{InitialSpeed: 10, LaunchAngleDegrees: 30}

	run := NewRunEvent(RunEnded, nil, "run-2", params)
	if run.GetType() != RunEnded || run.RunID != "run-2" || run.Parameters != params {
		t.Errorf("unexpected run event: %+v", run)
	}

	pe := NewParametersEvent(nil, params)
	if pe.GetType() != ParametersChanged {
		t.Errorf("GetType() = %v, want %v", pe.GetType(), ParametersChanged)
	}
	if pe.Readout.Range != params.Range() || pe.Readout.Elapsed != 0 {
		t.Errorf("unexpected readout in parameters event: %+v", pe.Readout)
	}
}

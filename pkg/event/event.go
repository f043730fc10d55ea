// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-parabola/pkg/physics"
	"github.com/opd-ai/go-parabola/pkg/readout"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	RunStarted        Type = "run_started"
	TickSampled       Type = "tick_sampled"
	RunEnded          Type = "run_ended"
	ParametersChanged Type = "parameters_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registeredHandler struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			// copy so a Publish iterating the old slice is unaffected
			next := make([]registeredHandler, 0, len(handlers)-1)
			next = append(next, handlers[:i]...)
			b.handlers[eventType] = append(next, handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// RunEvent marks the start or end of a run.
type RunEvent struct {
	BaseEvent
	RunID      string
	Parameters physics.Parameters
	Elapsed    float64
	Ticks      uint64
	Reason     string
}

// NewRunEvent creates a new run lifecycle event
func NewRunEvent(eventType Type, source interface{}, runID string, params physics.Parameters) *RunEvent {
	return &RunEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		RunID:      runID,
		Parameters: params,
	}
}

// TickEvent carries one published sample of a running simulation.
type TickEvent struct {
	BaseEvent
	RunID    string
	Tick     uint64
	Elapsed  float64
	Position physics.Position
	Readout  readout.Readout
}

// NewTickEvent creates a new tick event
func NewTickEvent(source interface{}, runID string, tick uint64, elapsed float64, pos physics.Position, r readout.Readout) *TickEvent {
	return &TickEvent{
		BaseEvent: BaseEvent{
			EventType: TickSampled,
			Source:    source,
		},
		RunID:    runID,
		Tick:     tick,
		Elapsed:  elapsed,
		Position: pos,
		Readout:  r,
	}
}

// ParametersEvent reports a change of the user-controlled parameters.
type ParametersEvent struct {
	BaseEvent
	Parameters physics.Parameters
	Readout    readout.Readout
}

// NewParametersEvent creates a new parameters-changed event
func NewParametersEvent(source interface{}, params physics.Parameters) *ParametersEvent {
	return &ParametersEvent{
		BaseEvent: BaseEvent{
			EventType: ParametersChanged,
			Source:    source,
		},
		Parameters: params,
		Readout:    readout.Compute(params, 0),
	}
}

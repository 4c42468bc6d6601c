// Package events provides the in-process event bus the qualification
// pipeline publishes to. It is platform infrastructure and knows nothing
// about leads, scores or schedules.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event carried over the bus.
type Event interface {
	// EventName returns the stable identifier handlers subscribe on.
	EventName() string
	// OccurredAt returns when the event happened.
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events. Embed it.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of one type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events to subscribed handlers.
type Bus interface {
	// Publish delivers an event to every handler subscribed to its name.
	// Handlers run asynchronously; publish never blocks the pipeline.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers an event and waits for all handlers.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under the name Event.EventName() returns.
	Subscribe(eventName string, handler Handler)
}

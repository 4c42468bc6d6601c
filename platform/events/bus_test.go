package events

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"leadintel_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishDeliversToSubscribedHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	received := make(chan string, 2)
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		received <- event.EventName()
		return nil
	}))
	bus.Subscribe("other.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		received <- "wrong handler"
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "thing.happened"})

	select {
	case name := <-received:
		if name != "thing.happened" {
			t.Fatalf("delivered to the wrong handler: %s", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("handler never invoked")
	}
}

func TestPublishSurvivesCancelledContext(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	received := make(chan struct{}, 1)
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		if err := ctx.Err(); err != nil {
			t.Errorf("handler context cancelled: %v", err)
		}
		received <- struct{}{}
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{NewBaseEvent(), "thing.happened"})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatalf("handler never invoked")
	}
}

func TestPublishSyncCollectsAllHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		return errors.New("first failure")
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		return nil
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		return errors.New("second failure")
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "thing.happened"})
	if err == nil {
		t.Fatalf("expected aggregated handler errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "first failure") || !strings.Contains(msg, "second failure") {
		t.Fatalf("missing handler error in aggregate: %s", msg)
	}
}

func TestPublishSyncWithoutSubscribersIsNil(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "nobody.listens"}); err != nil {
		t.Fatalf("expected nil for an event with no subscribers, got %v", err)
	}
}

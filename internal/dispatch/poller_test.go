package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"

	"leadintel_backend/internal/events"
	"leadintel_backend/internal/followup"
	"leadintel_backend/internal/model"
	"leadintel_backend/platform/logger"
)

type fakeEngine struct {
	due []followup.Action
}

func (f *fakeEngine) DueActions(now time.Time) []followup.Action { return f.due }

func (f *fakeEngine) Render(action followup.Action) (followup.RenderedMessage, model.LeadAttributes, bool) {
	return followup.RenderedMessage{}, model.LeadAttributes{}, false
}

func (f *fakeEngine) CompleteAction(ctx context.Context, actionID string, success bool, channel, errMsg string) {
}

func TestPollerSkipsManualChannels(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := testConfig{redisURL: "redis://" + srv.Addr()}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	auto := followup.ActionMetadata{Automated: true}
	engine := &fakeEngine{due: []followup.Action{
		{ID: "l1:s:0", LeadID: "l1", Type: followup.ActionEmail, Metadata: auto},
		{ID: "l1:s:1", LeadID: "l1", Type: followup.ActionPhoneCall, Metadata: auto},
		{ID: "l1:s:2", LeadID: "l1", Type: followup.ActionWhatsApp, Metadata: auto},
		{ID: "l1:s:3", LeadID: "l1", Type: followup.ActionEmail, Metadata: followup.ActionMetadata{Automated: false}},
	}}

	poller := NewPoller(cfg, engine, client, nil, logger.New("test"))
	poller.poll(context.Background())

	opt, err := redisClientOpt(cfg.redisURL, false)
	if err != nil {
		t.Fatalf("redisClientOpt: %v", err)
	}
	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("followup")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 enqueued actions (email and whatsapp), got %d", len(pending))
	}
}

func TestPollerAnnouncesEnqueuedActionsOnce(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := testConfig{redisURL: "redis://" + srv.Addr()}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	engine := &fakeEngine{due: []followup.Action{
		{ID: "l2:s:0", LeadID: "l2", Type: followup.ActionEmail, AssignedTo: "sales-team", Metadata: followup.ActionMetadata{Automated: true}},
	}}

	bus := events.NewInMemoryBus(logger.New("test"))
	received := make(chan events.ActionDue, 4)
	bus.Subscribe(events.ActionDue{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		received <- event.(events.ActionDue)
		return nil
	}))

	poller := NewPoller(cfg, engine, client, bus, logger.New("test"))
	poller.poll(context.Background())

	select {
	case due := <-received:
		if due.ActionID != "l2:s:0" || due.LeadID != "l2" || due.ActionType != "email" {
			t.Fatalf("unexpected event: %+v", due)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no due event published for the enqueued action")
	}

	// A second cycle sees the same still-pending action in the queue and
	// must stay silent.
	poller.poll(context.Background())
	select {
	case due := <-received:
		t.Fatalf("duplicate due event for %s", due.ActionID)
	case <-time.After(200 * time.Millisecond):
	}
}

package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type testConfig struct {
	redisURL string
}

func (c testConfig) GetRedisURL() string            { return c.redisURL }
func (c testConfig) GetRedisTLSInsecure() bool      { return false }
func (c testConfig) GetAsynqQueueName() string      { return "followup" }
func (c testConfig) GetAsynqConcurrency() int       { return 1 }
func (c testConfig) GetPollInterval() time.Duration { return time.Minute }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testConfig{}); err == nil {
		t.Fatalf("expected error for missing redis url")
	}
}

func TestEnqueueFollowUpActionDeduplicates(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := testConfig{redisURL: "redis://" + srv.Addr()}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	payload := FollowUpActionPayload{
		ActionID:   "lead-1:high-value-sequence:0",
		LeadID:     "lead-1",
		ActionType: "email",
		TemplateID: "high-value-intro",
		AssignedTo: "sales-team",
	}

	ctx := context.Background()
	queued, err := client.EnqueueFollowUpAction(ctx, payload)
	if err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if !queued {
		t.Fatalf("first enqueue not reported as newly queued")
	}
	// The action ID doubles as the task ID: a second poll cycle picking up
	// the same pending action must not enqueue a duplicate.
	queued, err = client.EnqueueFollowUpAction(ctx, payload)
	if err != nil {
		t.Fatalf("second enqueue: %v", err)
	}
	if queued {
		t.Fatalf("duplicate enqueue reported as newly queued")
	}

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
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(pending))
	}
	if pending[0].Type != TaskFollowUpAction {
		t.Fatalf("unexpected task type %s", pending[0].Type)
	}

	parsed, err := ParseFollowUpActionPayload(asynq.NewTask(pending[0].Type, pending[0].Payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if parsed != payload {
		t.Fatalf("payload round-trip mismatch: %+v", parsed)
	}
}

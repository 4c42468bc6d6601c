package dispatch

import (
	"context"
	"time"

	"leadintel_backend/internal/events"
	"leadintel_backend/internal/followup"
	"leadintel_backend/internal/model"
	"leadintel_backend/platform/config"
	"leadintel_backend/platform/logger"
)

// Engine is the slice of the intake service the dispatch layer needs.
type Engine interface {
	DueActions(now time.Time) []followup.Action
	Render(action followup.Action) (followup.RenderedMessage, model.LeadAttributes, bool)
	CompleteAction(ctx context.Context, actionID string, success bool, channel, errMsg string)
}

// Poller periodically drains the engine's due actions into the queue.
// Only automated email and WhatsApp actions are enqueued; calls, meetings,
// and other manual work stay pending for the assignee queue.
type Poller struct {
	engine   Engine
	client   *Client
	bus      events.Bus
	interval time.Duration
	log      *logger.Logger
}

func NewPoller(cfg config.DispatchConfig, engine Engine, client *Client, bus events.Bus, log *logger.Logger) *Poller {
	interval := cfg.GetPollInterval()
	if interval <= 0 {
		interval = time.Minute
	}
	return &Poller{
		engine:   engine,
		client:   client,
		bus:      bus,
		interval: interval,
		log:      log,
	}
}

func (p *Poller) Run(ctx context.Context) {
	if p == nil || p.client == nil {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		p.poll(ctx)
	}
}

func (p *Poller) poll(ctx context.Context) {
	due := p.engine.DueActions(time.Now())
	for _, action := range due {
		if !deliverable(action) {
			continue
		}
		queued, err := p.client.EnqueueFollowUpAction(ctx, FollowUpActionPayload{
			ActionID:   action.ID,
			LeadID:     action.LeadID,
			ActionType: string(action.Type),
			TemplateID: action.TemplateID,
			AssignedTo: action.AssignedTo,
		})
		if err != nil {
			p.log.Warn("enqueue follow-up action failed", "action_id", action.ID, "error", err)
			continue
		}
		// Announce each action once, on first enqueue.
		if queued && p.bus != nil {
			p.bus.Publish(ctx, events.ActionDue{
				BaseEvent:  events.NewBaseEvent(),
				ActionID:   action.ID,
				LeadID:     action.LeadID,
				ActionType: string(action.Type),
				AssignedTo: action.AssignedTo,
			})
		}
	}
}

func deliverable(action followup.Action) bool {
	if !action.Metadata.Automated {
		return false
	}
	return action.Type == followup.ActionEmail || action.Type == followup.ActionWhatsApp
}

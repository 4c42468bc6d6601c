package events

import (
	"context"

	"leadintel_backend/platform/logger"
)

// RegisterAuditLog subscribes a structured-log handler for every domain
// event, so each binary emits one audit line per pipeline transition. The
// composition roots call this right after building the bus.
func RegisterAuditLog(bus Bus, log *logger.Logger) {
	bus.Subscribe(LeadQualified{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		e, ok := event.(LeadQualified)
		if !ok {
			return nil
		}
		log.Info("lead qualified",
			"lead_id", e.LeadID,
			"total", e.Total,
			"probability", e.Probability,
			"sequence_id", e.SequenceID,
			"priority", e.Priority,
			"assigned_to", e.AssignedTo,
		)
		return nil
	}))

	bus.Subscribe(ActionDue{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		e, ok := event.(ActionDue)
		if !ok {
			return nil
		}
		log.Info("follow-up action due",
			"action_id", e.ActionID,
			"lead_id", e.LeadID,
			"action_type", e.ActionType,
			"assigned_to", e.AssignedTo,
		)
		return nil
	}))

	bus.Subscribe(ActionDispatched{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		e, ok := event.(ActionDispatched)
		if !ok {
			return nil
		}
		log.Info("follow-up action dispatched",
			"action_id", e.ActionID,
			"lead_id", e.LeadID,
			"action_type", e.ActionType,
			"success", e.Success,
			"error", e.Error,
		)
		return nil
	}))

	bus.Subscribe(LeadResponded{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		e, ok := event.(LeadResponded)
		if !ok {
			return nil
		}
		log.Info("lead responded", "lead_id", e.LeadID, "channel", e.Channel)
		return nil
	}))

	bus.Subscribe(ConversionStatusChanged{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		e, ok := event.(ConversionStatusChanged)
		if !ok {
			return nil
		}
		log.Info("conversion status changed", "lead_id", e.LeadID, "status", e.Status)
		return nil
	}))
}

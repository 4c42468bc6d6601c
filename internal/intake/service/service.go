// Package service orchestrates the qualification pipeline: score the
// submission, predict conversion, route it, build the follow-up schedule,
// persist the audit record, and publish the domain event.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadintel_backend/internal/events"
	"leadintel_backend/internal/followup"
	"leadintel_backend/internal/intake/repository"
	"leadintel_backend/internal/intake/transport"
	"leadintel_backend/internal/model"
	"leadintel_backend/internal/prediction"
	"leadintel_backend/internal/scoring"
	"leadintel_backend/platform/apperr"
	"leadintel_backend/platform/logger"
	"leadintel_backend/platform/phone"
)

const leadNotFoundMessage = "lead not found"

// Service runs the qualification pipeline and owns the in-memory lead
// snapshots the dispatcher renders from. The repository is an audit trail:
// persistence failures are logged, never surfaced to the submitter.
type Service struct {
	scorer    *scoring.Scorer
	predictor *prediction.Predictor
	scheduler *followup.Scheduler
	repo      repository.Repository
	bus       events.Bus
	log       *logger.Logger

	mu        sync.RWMutex
	snapshots map[string]model.LeadAttributes
}

// New creates the intake service.
func New(scorer *scoring.Scorer, predictor *prediction.Predictor, scheduler *followup.Scheduler, repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		scorer:    scorer,
		predictor: predictor,
		scheduler: scheduler,
		repo:      repo,
		bus:       bus,
		log:       log,
		snapshots: make(map[string]model.LeadAttributes),
	}
}

// SubmitLead runs the full pipeline for one submission and returns the
// qualification result. Resubmitting the same leadId rebuilds the schedule
// from scratch.
func (s *Service) SubmitLead(ctx context.Context, req transport.SubmitLeadRequest) (transport.QualificationResponse, error) {
	leadID := strings.TrimSpace(req.LeadID)
	if leadID == "" {
		leadID = uuid.NewString()
	}

	lead := req.Attributes()
	if normalized := phone.NormalizeE164(lead.Phone); normalized != "" {
		lead.Phone = normalized
	}

	breakdown := s.scorer.Score(lead)
	pred := s.predictor.Predict(lead, breakdown)
	routing := s.route(breakdown)
	schedule := s.scheduler.BuildSchedule(leadID, lead, breakdown, routing, &pred)

	s.mu.Lock()
	s.snapshots[leadID] = lead
	s.mu.Unlock()

	if routing.AssignedTo == "" && len(schedule.Actions) > 0 {
		routing.AssignedTo = schedule.Actions[0].AssignedTo
	}

	s.log.LeadScored(leadID, breakdown.Total, schedule.SequenceID)

	if err := s.repo.InsertQualification(ctx, repository.Qualification{
		LeadID:     leadID,
		Attributes: lead,
		Breakdown:  breakdown,
		Prediction: pred,
		SequenceID: schedule.SequenceID,
		Priority:   string(routing.Priority),
		AssignedTo: routing.AssignedTo,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		s.log.DatabaseError("insert qualification", err)
	}

	s.bus.Publish(ctx, events.LeadQualified{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      leadID,
		Total:       breakdown.Total,
		Probability: pred.Probability,
		SequenceID:  schedule.SequenceID,
		Priority:    routing.Priority,
		AssignedTo:  routing.AssignedTo,
		Attributes:  lead,
	})

	return transport.QualificationResponse{
		LeadID:     leadID,
		Score:      breakdown,
		Prediction: pred,
		Routing:    routing,
		Schedule:   schedule,
	}, nil
}

// route derives the assignment priority from the total score. Assignee
// resolution happens in the scheduler against its configured default.
func (s *Service) route(breakdown model.ScoreBreakdown) model.RoutingDecision {
	var priority model.Priority
	switch {
	case breakdown.Total >= 80:
		priority = model.PriorityCritical
	case breakdown.Total >= 60:
		priority = model.PriorityHigh
	case breakdown.Total >= 40:
		priority = model.PriorityMedium
	default:
		priority = model.PriorityLow
	}
	return model.RoutingDecision{Priority: priority}
}

// GetSchedule returns the live follow-up schedule for a lead.
func (s *Service) GetSchedule(leadID string) (followup.Schedule, error) {
	schedule, ok := s.scheduler.GetSchedule(leadID)
	if !ok {
		return followup.Schedule{}, apperr.NotFound(leadNotFoundMessage)
	}
	return schedule, nil
}

// GetQualification returns the persisted audit record for a lead.
func (s *Service) GetQualification(ctx context.Context, leadID string) (repository.Qualification, error) {
	return s.repo.GetQualification(ctx, leadID)
}

// ListQualifications returns the most recent audit records.
func (s *Service) ListQualifications(ctx context.Context, limit int) ([]repository.Qualification, error) {
	return s.repo.ListQualifications(ctx, limit)
}

// DueActions returns all pending actions due at the given instant.
func (s *Service) DueActions(now time.Time) []followup.Action {
	return s.scheduler.DueActions(now)
}

// ActionsForAssignee returns the pending work queue for one assignee.
func (s *Service) ActionsForAssignee(assignee string) []followup.Action {
	return s.scheduler.ActionsForAssignee(assignee)
}

// CompleteAction records a delivery or task outcome and audits the attempt.
func (s *Service) CompleteAction(ctx context.Context, actionID string, success bool, channel, errMsg string) {
	s.scheduler.CompleteAction(actionID, success)

	leadID := leadIDFromAction(actionID)
	if err := s.repo.InsertDispatchAttempt(ctx, repository.DispatchAttempt{
		ActionID:  actionID,
		LeadID:    leadID,
		Channel:   channel,
		Success:   success,
		Error:     errMsg,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		s.log.DatabaseError("insert dispatch attempt", err)
	}

	s.bus.Publish(ctx, events.ActionDispatched{
		BaseEvent:  events.NewBaseEvent(),
		ActionID:   actionID,
		LeadID:     leadID,
		ActionType: channel,
		Success:    success,
		Error:      errMsg,
		AttemptAt:  time.Now().UTC(),
	})
}

// MarkResponseReceived registers an inbound reply and cancels pending
// automated outreach for the lead.
func (s *Service) MarkResponseReceived(ctx context.Context, leadID, channel string) {
	s.scheduler.MarkResponseReceived(leadID)
	s.bus.Publish(ctx, events.LeadResponded{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Channel:   channel,
	})
}

// UpdateConversionStatus moves the lead through the conversion funnel.
func (s *Service) UpdateConversionStatus(ctx context.Context, leadID string, status followup.ConversionStatus) {
	s.scheduler.UpdateConversionStatus(leadID, status)
	s.bus.Publish(ctx, events.ConversionStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Status:    string(status),
	})
}

// Render produces the channel-ready message for an action together with
// the lead snapshot it was rendered from.
func (s *Service) Render(action followup.Action) (followup.RenderedMessage, model.LeadAttributes, bool) {
	s.mu.RLock()
	lead, ok := s.snapshots[action.LeadID]
	s.mu.RUnlock()
	if !ok {
		return followup.RenderedMessage{}, model.LeadAttributes{}, false
	}
	return s.scheduler.RenderContent(action, lead), lead, true
}

// Stats exposes scheduler aggregates for the dashboard endpoint.
func (s *Service) Stats() followup.Stats {
	return s.scheduler.Stats()
}

// Rehydrate rebuilds the in-memory scheduler from the persisted audit
// trail after a restart. Schedules are reconstructed anchored at their
// original submission time, then the recorded dispatch outcomes are
// replayed so already-delivered actions do not fire again.
func (s *Service) Rehydrate(ctx context.Context, limit int) error {
	records, err := s.repo.ListQualifications(ctx, limit)
	if err != nil {
		return err
	}

	for _, rec := range records {
		routing := model.RoutingDecision{
			AssignedTo: rec.AssignedTo,
			Priority:   model.Priority(rec.Priority),
		}
		pred := rec.Prediction
		s.scheduler.BuildScheduleAt(rec.LeadID, rec.Attributes, rec.Breakdown, routing, &pred, rec.CreatedAt)

		s.mu.Lock()
		s.snapshots[rec.LeadID] = rec.Attributes
		s.mu.Unlock()

		attempts, err := s.repo.ListDispatchAttempts(ctx, rec.LeadID)
		if err != nil {
			s.log.DatabaseError("list dispatch attempts", err)
			continue
		}
		// Newest first from the store; replay oldest first.
		for i := len(attempts) - 1; i >= 0; i-- {
			s.scheduler.CompleteAction(attempts[i].ActionID, attempts[i].Success)
		}
	}

	s.log.Info("scheduler state rehydrated", "schedules", len(records))
	return nil
}

// leadIDFromAction recovers the lead component of an action identity.
func leadIDFromAction(actionID string) string {
	if i := strings.Index(actionID, ":"); i > 0 {
		return actionID[:i]
	}
	return actionID
}

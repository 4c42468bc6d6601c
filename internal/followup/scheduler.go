package followup

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"leadintel_backend/internal/model"
)

// ActionStatus is the lifecycle state of a follow-up action.
// pending is the only non-terminal state; transitions never reverse.
type ActionStatus string

const (
	StatusPending   ActionStatus = "pending"
	StatusCompleted ActionStatus = "completed"
	StatusFailed    ActionStatus = "failed"
	StatusSkipped   ActionStatus = "skipped"
)

// ConversionStatus tracks where a schedule's lead is in the funnel.
// converted and lost are terminal.
type ConversionStatus string

const (
	ConversionActive    ConversionStatus = "active"
	ConversionNurturing ConversionStatus = "nurturing"
	ConversionConverted ConversionStatus = "converted"
	ConversionLost      ConversionStatus = "lost"
)

// ActionMetadata carries the qualification snapshot and sequence provenance
// of an action. Automated actions are cancelled when the lead responds;
// manually-flagged ones still need a human to act.
type ActionMetadata struct {
	Automated      bool    `json:"automated"`
	Score          int     `json:"score"`
	Probability    float64 `json:"probability,omitempty"`
	EstimatedValue float64 `json:"estimatedValue,omitempty"`
	SequenceID     string  `json:"sequenceId,omitempty"`
	StepIndex      int     `json:"stepIndex"`
}

// Action is one concrete scheduled outreach step. Status is the only field
// that mutates after creation, and only forward through the state machine.
type Action struct {
	ID          string         `json:"id"`
	LeadID      string         `json:"leadId"`
	Type        ActionType     `json:"type"`
	ScheduledAt time.Time      `json:"scheduledAt"`
	Status      ActionStatus   `json:"status"`
	Priority    model.Priority `json:"priority"`
	AssignedTo  string         `json:"assignedTo"`
	TemplateID  string         `json:"templateId,omitempty"`
	Metadata    ActionMetadata `json:"metadata"`
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// Schedule is the per-lead follow-up aggregate. At most one schedule exists
// per lead; rebuilding overwrites.
type Schedule struct {
	LeadID           string           `json:"leadId"`
	SequenceID       string           `json:"sequenceId,omitempty"`
	Actions          []Action         `json:"actions"`
	NextAction       *Action          `json:"nextAction,omitempty"`
	LastContactAt    *time.Time       `json:"lastContactAt,omitempty"`
	ResponseReceived bool             `json:"responseReceived"`
	ConversionStatus ConversionStatus `json:"conversionStatus"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// Stats aggregates scheduler state for dashboards.
type Stats struct {
	TotalSchedules   int     `json:"totalSchedules"`
	PendingActions   int     `json:"pendingActions"`
	CompletedActions int     `json:"completedActions"`
	ConvertedLeads   int     `json:"convertedLeads"`
	ConversionRate   float64 `json:"conversionRate"`
	AvgResponseHours float64 `json:"avgResponseHours"`
}

// Config parameterizes the scheduler: the sequence book, the template book,
// and the assignee substituted for auto-assign when routing supplies none.
type Config struct {
	Sequences       []Sequence
	Templates       []Template
	DefaultAssignee string
}

// DefaultConfig returns the production scheduler configuration.
func DefaultConfig() Config {
	return Config{
		Sequences:       DefaultSequences(),
		Templates:       DefaultTemplates(),
		DefaultAssignee: "sales-team",
	}
}

// schedulerState is the internal mutable aggregate for one lead.
type schedulerState struct {
	schedule *Schedule
}

// Scheduler owns all follow-up schedule state. All mutating operations are
// serialized behind one mutex; every operation is total: unknown lead or
// action IDs are silent no-ops so outreach is never blocked on a bug.
type Scheduler struct {
	mu         sync.RWMutex
	cfg        Config
	selector   *Selector
	templates  map[string]Template
	schedules  map[string]*Schedule
	actionLead map[string]string

	now func() time.Time
}

// NewScheduler creates a scheduler with its own in-memory state.
func NewScheduler(cfg Config) *Scheduler {
	templates := make(map[string]Template, len(cfg.Templates))
	for _, tmpl := range cfg.Templates {
		templates[tmpl.ID] = tmpl
	}
	return &Scheduler{
		cfg:        cfg,
		selector:   NewSelector(cfg.Sequences),
		templates:  templates,
		schedules:  make(map[string]*Schedule),
		actionLead: make(map[string]string),
		now:        time.Now,
	}
}

// Select exposes sequence selection without building a schedule.
func (s *Scheduler) Select(lead model.LeadAttributes, breakdown model.ScoreBreakdown) (Sequence, bool) {
	return s.selector.Select(lead, breakdown)
}

// BuildSchedule materializes the follow-up actions for a lead. If a sequence
// matches, one action is created per step at now+delay; otherwise a single
// default action fires 2 hours out. Any prior schedule for the lead is
// overwritten, never merged.
func (s *Scheduler) BuildSchedule(leadID string, lead model.LeadAttributes, breakdown model.ScoreBreakdown, routing model.RoutingDecision, prediction *model.ConversionPrediction) Schedule {
	return s.BuildScheduleAt(leadID, lead, breakdown, routing, prediction, s.now())
}

// BuildScheduleAt builds a schedule anchored at an explicit instant.
// Rehydration from the audit trail uses this to reproduce the action
// times of the original submission.
func (s *Scheduler) BuildScheduleAt(leadID string, lead model.LeadAttributes, breakdown model.ScoreBreakdown, routing model.RoutingDecision, prediction *model.ConversionPrediction, now time.Time) Schedule {
	meta := ActionMetadata{
		Automated: true,
		Score:     breakdown.Total,
	}
	if prediction != nil {
		meta.Probability = prediction.Probability
		meta.EstimatedValue = prediction.EstimatedValue
	}

	var actions []Action
	sequenceID := ""
	if seq, ok := s.selector.Select(lead, breakdown); ok {
		sequenceID = seq.ID
		actions = make([]Action, 0, len(seq.Steps))
		for i, step := range seq.Steps {
			stepMeta := meta
			stepMeta.SequenceID = seq.ID
			stepMeta.StepIndex = i
			actions = append(actions, Action{
				ID:          actionID(leadID, seq.ID, i),
				LeadID:      leadID,
				Type:        step.Type,
				ScheduledAt: now.Add(time.Duration(step.DelayHours * float64(time.Hour))),
				Status:      StatusPending,
				Priority:    step.Priority,
				AssignedTo:  s.resolveAssignee(step.AssignedTo, routing),
				TemplateID:  step.TemplateID,
				Metadata:    stepMeta,
				CreatedAt:   now,
			})
		}
	} else {
		templateID := s.defaultTemplate(lead, breakdown.Total)
		actions = []Action{{
			ID:          actionID(leadID, "default", 0),
			LeadID:      leadID,
			Type:        ActionEmail,
			ScheduledAt: now.Add(2 * time.Hour),
			Status:      StatusPending,
			Priority:    routing.Priority,
			AssignedTo:  s.resolveAssignee(AutoAssign, routing),
			TemplateID:  templateID,
			Metadata:    meta,
			CreatedAt:   now,
		}}
	}

	schedule := &Schedule{
		LeadID:           leadID,
		SequenceID:       sequenceID,
		Actions:          actions,
		ConversionStatus: ConversionActive,
		CreatedAt:        now,
	}
	recomputeNextAction(schedule)

	s.mu.Lock()
	if prior, ok := s.schedules[leadID]; ok {
		for _, a := range prior.Actions {
			delete(s.actionLead, a.ID)
		}
	}
	s.schedules[leadID] = schedule
	for _, a := range actions {
		s.actionLead[a.ID] = leadID
	}
	s.mu.Unlock()

	return copySchedule(schedule)
}

// defaultTemplate picks the message for the synthetic default action: the
// first configured email template whose conditions hold for the lead.
// The fresh schedule means zero days since contact.
func (s *Scheduler) defaultTemplate(lead model.LeadAttributes, total int) string {
	for _, tmpl := range s.cfg.Templates {
		if tmpl.Channel != ActionEmail {
			continue
		}
		if tmpl.AppliesTo(lead, total, 0) {
			return tmpl.ID
		}
	}
	return TemplateStandardIntro
}

func (s *Scheduler) resolveAssignee(assignee string, routing model.RoutingDecision) string {
	if assignee != AutoAssign && assignee != "" {
		return assignee
	}
	if routing.AssignedTo != "" {
		return routing.AssignedTo
	}
	return s.cfg.DefaultAssignee
}

// DueActions returns every pending action scheduled at or before now,
// ordered by priority rank then scheduledAt. Higher priority always
// preempts earlier time within the batch. Repeated polls return the same
// actions until the caller reports completion.
func (s *Scheduler) DueActions(now time.Time) []Action {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []Action
	for _, schedule := range s.schedules {
		for _, a := range schedule.Actions {
			if a.Status == StatusPending && !a.ScheduledAt.After(now) {
				due = append(due, a)
			}
		}
	}
	sortActions(due)
	return due
}

// ActionsForAssignee returns the pending actions assigned to the given
// party, ordered identically to DueActions.
func (s *Scheduler) ActionsForAssignee(assignee string) []Action {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Action
	for _, schedule := range s.schedules {
		for _, a := range schedule.Actions {
			if a.Status == StatusPending && a.AssignedTo == assignee {
				out = append(out, a)
			}
		}
	}
	sortActions(out)
	return out
}

// CompleteAction transitions a pending action to completed or failed and
// stamps the completion time. A successful email or call also stamps the
// schedule's last contact. Unknown or already-terminal actions are no-ops.
func (s *Scheduler) CompleteAction(id string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leadID, ok := s.actionLead[id]
	if !ok {
		return
	}
	schedule, ok := s.schedules[leadID]
	if !ok {
		return
	}

	now := s.now()
	for i := range schedule.Actions {
		a := &schedule.Actions[i]
		if a.ID != id {
			continue
		}
		if a.Status != StatusPending {
			return
		}
		if success {
			a.Status = StatusCompleted
		} else {
			a.Status = StatusFailed
		}
		a.CompletedAt = &now
		if success && (a.Type == ActionEmail || a.Type == ActionPhoneCall) {
			schedule.LastContactAt = &now
		}
		break
	}
	recomputeNextAction(schedule)
}

// MarkResponseReceived records an inbound reply: stamps last contact and
// skips every still-pending automated action. Manually-flagged actions stay
// pending since a human must still act on them.
func (s *Scheduler) MarkResponseReceived(leadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, ok := s.schedules[leadID]
	if !ok {
		return
	}

	now := s.now()
	schedule.ResponseReceived = true
	schedule.LastContactAt = &now
	for i := range schedule.Actions {
		a := &schedule.Actions[i]
		if a.Status == StatusPending && a.Metadata.Automated {
			a.Status = StatusSkipped
		}
	}
	recomputeNextAction(schedule)
}

// UpdateConversionStatus moves the schedule through the conversion funnel.
// converted and lost are terminal: all pending actions are skipped and the
// next action cleared. Transitions out of a terminal state are ignored.
func (s *Scheduler) UpdateConversionStatus(leadID string, status ConversionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, ok := s.schedules[leadID]
	if !ok {
		return
	}
	if schedule.ConversionStatus == ConversionConverted || schedule.ConversionStatus == ConversionLost {
		return
	}

	schedule.ConversionStatus = status
	if status == ConversionConverted || status == ConversionLost {
		for i := range schedule.Actions {
			a := &schedule.Actions[i]
			if a.Status == StatusPending {
				a.Status = StatusSkipped
			}
		}
		schedule.NextAction = nil
		return
	}
	recomputeNextAction(schedule)
}

// GetSchedule returns a snapshot of the lead's schedule.
func (s *Scheduler) GetSchedule(leadID string) (Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.schedules[leadID]
	if !ok {
		return Schedule{}, false
	}
	return copySchedule(schedule), true
}

// Stats aggregates current scheduler state for dashboards.
func (s *Scheduler) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{TotalSchedules: len(s.schedules)}
	responded := 0
	var responseHours float64
	for _, schedule := range s.schedules {
		for _, a := range schedule.Actions {
			switch a.Status {
			case StatusPending:
				stats.PendingActions++
			case StatusCompleted:
				stats.CompletedActions++
			}
		}
		if schedule.ConversionStatus == ConversionConverted {
			stats.ConvertedLeads++
		}
		if schedule.ResponseReceived && schedule.LastContactAt != nil {
			responded++
			responseHours += schedule.LastContactAt.Sub(schedule.CreatedAt).Hours()
		}
	}
	if stats.TotalSchedules > 0 {
		stats.ConversionRate = float64(stats.ConvertedLeads) / float64(stats.TotalSchedules)
	}
	if responded > 0 {
		stats.AvgResponseHours = responseHours / float64(responded)
	}
	return stats
}

// actionID derives a stable identity from lead, sequence, and step index.
func actionID(leadID, sequenceID string, index int) string {
	return fmt.Sprintf("%s:%s:%d", leadID, sequenceID, index)
}

func recomputeNextAction(schedule *Schedule) {
	schedule.NextAction = nil
	for i := range schedule.Actions {
		a := &schedule.Actions[i]
		if a.Status != StatusPending {
			continue
		}
		if schedule.NextAction == nil || a.ScheduledAt.Before(schedule.NextAction.ScheduledAt) {
			next := *a
			schedule.NextAction = &next
		}
	}
}

func sortActions(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Priority.Rank() != actions[j].Priority.Rank() {
			return actions[i].Priority.Rank() < actions[j].Priority.Rank()
		}
		if !actions[i].ScheduledAt.Equal(actions[j].ScheduledAt) {
			return actions[i].ScheduledAt.Before(actions[j].ScheduledAt)
		}
		return actions[i].ID < actions[j].ID
	})
}

func copySchedule(schedule *Schedule) Schedule {
	out := *schedule
	out.Actions = append([]Action(nil), schedule.Actions...)
	if schedule.NextAction != nil {
		next := *schedule.NextAction
		out.NextAction = &next
	}
	if schedule.LastContactAt != nil {
		last := *schedule.LastContactAt
		out.LastContactAt = &last
	}
	return out
}

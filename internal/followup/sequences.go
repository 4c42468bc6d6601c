package followup

import "leadintel_backend/internal/model"

// AutoAssign is the placeholder assignee resolved against the routing
// decision when a schedule is built.
const AutoAssign = "auto-assign"

// Step is one timed entry of a sequence: how long after schedule build the
// action fires and what it looks like.
type Step struct {
	DelayHours float64
	Type       ActionType
	TemplateID string
	Priority   model.Priority
	AssignedTo string
}

// Sequence is a predefined, trigger-gated, ordered list of follow-up steps.
// Sequences are evaluated in declaration order; the first whose trigger
// matches wins.
type Sequence struct {
	ID      string
	Name    string
	Trigger Conditions
	Steps   []Step
}

const (
	SequenceHighValue = "high-value-sequence"
	SequenceUrgent    = "urgent-response-sequence"
	SequenceStandard  = "standard-sequence"
	SequenceNurturing = "nurturing-sequence"
)

// DefaultSequences returns the production follow-up sequences in priority
// order. Declaration order is the tie-break when triggers overlap.
func DefaultSequences() []Sequence {
	return []Sequence{
		{
			ID:      SequenceHighValue,
			Name:    "High-value lead blitz",
			Trigger: Conditions{MinScore: intPtr(70)},
			Steps: []Step{
				{DelayHours: 0.5, Type: ActionEmail, TemplateID: TemplateHighValueIntro, Priority: model.PriorityCritical, AssignedTo: AutoAssign},
				{DelayHours: 4, Type: ActionPhoneCall, Priority: model.PriorityCritical, AssignedTo: AutoAssign},
				{DelayHours: 24, Type: ActionWhatsApp, TemplateID: TemplateWhatsAppTouch, Priority: model.PriorityHigh, AssignedTo: AutoAssign},
				{DelayHours: 72, Type: ActionEmail, TemplateID: TemplateProposalOffer, Priority: model.PriorityHigh, AssignedTo: AutoAssign},
				{DelayHours: 168, Type: ActionPhoneCall, Priority: model.PriorityMedium, AssignedTo: AutoAssign},
			},
		},
		{
			ID:   SequenceUrgent,
			Name: "Urgent need fast response",
			Trigger: Conditions{
				MinScore:  intPtr(40),
				Urgencies: []model.Urgency{model.UrgencyImmediate},
			},
			Steps: []Step{
				{DelayHours: 1, Type: ActionEmail, TemplateID: TemplateHighValueIntro, Priority: model.PriorityHigh, AssignedTo: AutoAssign},
				{DelayHours: 4, Type: ActionPhoneCall, Priority: model.PriorityHigh, AssignedTo: AutoAssign},
				{DelayHours: 24, Type: ActionWhatsApp, TemplateID: TemplateWhatsAppTouch, Priority: model.PriorityMedium, AssignedTo: AutoAssign},
			},
		},
		{
			ID:      SequenceStandard,
			Name:    "Standard follow-up",
			Trigger: Conditions{MinScore: intPtr(40)},
			Steps: []Step{
				{DelayHours: 2, Type: ActionEmail, TemplateID: TemplateStandardIntro, Priority: model.PriorityMedium, AssignedTo: AutoAssign},
				{DelayHours: 24, Type: ActionEmail, TemplateID: TemplateCheckIn, Priority: model.PriorityMedium, AssignedTo: AutoAssign},
				{DelayHours: 96, Type: ActionPhoneCall, Priority: model.PriorityMedium, AssignedTo: AutoAssign},
				{DelayHours: 240, Type: ActionEmail, TemplateID: TemplateCheckIn, Priority: model.PriorityLow, AssignedTo: AutoAssign},
			},
		},
		{
			ID:      SequenceNurturing,
			Name:    "Long-horizon nurture",
			Trigger: Conditions{MaxScore: intPtr(39), RequireNoResponse: true},
			Steps: []Step{
				{DelayHours: 24, Type: ActionEmail, TemplateID: TemplateNurtureTouch, Priority: model.PriorityLow, AssignedTo: AutoAssign},
				{DelayHours: 168, Type: ActionEmail, TemplateID: TemplateNurtureTouch, Priority: model.PriorityLow, AssignedTo: AutoAssign},
				{DelayHours: 504, Type: ActionEmail, TemplateID: TemplateCheckIn, Priority: model.PriorityLow, AssignedTo: AutoAssign},
			},
		},
	}
}

// Selector picks the first sequence whose trigger matches a scored lead.
type Selector struct {
	sequences []Sequence
}

// NewSelector creates a selector over the given sequences. Order matters.
func NewSelector(sequences []Sequence) *Selector {
	return &Selector{sequences: sequences}
}

// Select returns the first matching sequence in declaration order, or
// ok=false when no trigger matches. Selection is deterministic for an
// identical (lead, breakdown) pair.
func (s *Selector) Select(lead model.LeadAttributes, breakdown model.ScoreBreakdown) (Sequence, bool) {
	for _, seq := range s.sequences {
		// Selection runs at qualification, before any outreach, so no
		// response can have been received yet.
		if triggerMatches(seq.Trigger, lead, breakdown.Total, false) {
			return seq, true
		}
	}
	return Sequence{}, false
}

func triggerMatches(trigger Conditions, lead model.LeadAttributes, score int, responseReceived bool) bool {
	if trigger.RequireNoResponse && responseReceived {
		return false
	}
	if trigger.MinScore != nil && score < *trigger.MinScore {
		return false
	}
	if trigger.MaxScore != nil && score > *trigger.MaxScore {
		return false
	}
	if len(trigger.Industries) > 0 && !containsIndustry(trigger.Industries, lead.IndustrySector) {
		return false
	}
	if len(trigger.Budgets) > 0 && !containsBudget(trigger.Budgets, lead.BudgetRange) {
		return false
	}
	if len(trigger.Urgencies) > 0 && !containsUrgency(trigger.Urgencies, lead.Urgency) {
		return false
	}
	return true
}

// Package followup contains the sequence selector and the stateful
// follow-up scheduler: the part of the engine that turns a scored lead into
// a time-ordered list of outreach actions and tracks their lifecycle.
package followup

import (
	"leadintel_backend/internal/model"
)

// ActionType is the outreach channel of a follow-up action.
type ActionType string

const (
	ActionEmail     ActionType = "email"
	ActionPhoneCall ActionType = "phone_call"
	ActionWhatsApp  ActionType = "whatsapp"
	ActionMeeting   ActionType = "meeting"
	ActionProposal  ActionType = "proposal"
	ActionReminder  ActionType = "reminder"
)

// Conditions gate where a template (or sequence) applies. Nil or empty
// fields are not evaluated.
type Conditions struct {
	MinScore            *int
	MaxScore            *int
	Industries          []model.Industry
	Budgets             []model.BudgetRange
	Urgencies           []model.Urgency
	MaxDaysSinceContact *int
	// RequireNoResponse restricts the trigger to leads that have not yet
	// replied on any channel. Vacuously satisfied at schedule build, which
	// happens at qualification, before any outreach.
	RequireNoResponse bool
}

// Template is a reusable message blueprint: channel, body with named
// placeholders, and applicability conditions. Read-only configuration,
// never lead-specific.
type Template struct {
	ID         string
	Channel    ActionType
	Subject    string
	Body       string
	Conditions Conditions
}

// AppliesTo reports whether the template's conditions hold for a lead with
// the given score and days since last contact.
func (t Template) AppliesTo(lead model.LeadAttributes, score int, daysSinceContact int) bool {
	c := t.Conditions
	if c.MinScore != nil && score < *c.MinScore {
		return false
	}
	if c.MaxScore != nil && score > *c.MaxScore {
		return false
	}
	if len(c.Industries) > 0 && !containsIndustry(c.Industries, lead.IndustrySector) {
		return false
	}
	if len(c.Budgets) > 0 && !containsBudget(c.Budgets, lead.BudgetRange) {
		return false
	}
	if len(c.Urgencies) > 0 && !containsUrgency(c.Urgencies, lead.Urgency) {
		return false
	}
	if c.MaxDaysSinceContact != nil && daysSinceContact > *c.MaxDaysSinceContact {
		return false
	}
	return true
}

const (
	// TemplateHighValueIntro is used for the synthetic default action when a
	// lead scores at or above the high-value threshold.
	TemplateHighValueIntro = "high-value-intro"
	// TemplateStandardIntro is the fallback for everyone else.
	TemplateStandardIntro = "standard-intro"

	TemplateCheckIn       = "check-in"
	TemplateWhatsAppTouch = "whatsapp-touch"
	TemplateProposalOffer = "proposal-offer"
	TemplateNurtureTouch  = "nurture-touch"
)

// DefaultTemplates returns the production message blueprints.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:      TemplateHighValueIntro,
			Channel: ActionEmail,
			Subject: "Your inquiry - let's talk today",
			Body: "Hi {{name}},\n\nThank you for reaching out about {{product_category}} for {{company}}. " +
				"Based on what you shared, I'd like to set up a call today to walk through options " +
				"that fit {{budget_range}}.\n\nWhen works best for you?",
			Conditions: Conditions{MinScore: intPtr(50)},
		},
		{
			ID:      TemplateStandardIntro,
			Channel: ActionEmail,
			Subject: "Thanks for your inquiry",
			Body: "Hi {{name}},\n\nThanks for contacting us about {{product_category}}. " +
				"One of our specialists will be in touch shortly. In the meantime, feel free to " +
				"reply with any questions.",
		},
		{
			ID:      TemplateCheckIn,
			Channel: ActionEmail,
			Subject: "Checking in on your project",
			Body: "Hi {{name}},\n\nJust checking in on your {{product_category}} project. " +
				"Is there anything we can clarify to help you move forward?",
			Conditions: Conditions{MaxDaysSinceContact: intPtr(14)},
		},
		{
			ID:      TemplateWhatsAppTouch,
			Channel: ActionWhatsApp,
			Body: "Hi {{name}}, this is the sales team following up on your inquiry for {{company}}. " +
				"Happy to answer questions right here if that's easier for you.",
		},
		{
			ID:      TemplateProposalOffer,
			Channel: ActionEmail,
			Subject: "A proposal for {{company}}",
			Body: "Hi {{name}},\n\nWe've put together a tailored proposal for {{company}} covering " +
				"{{product_category}} within {{budget_range}}. Could we schedule 20 minutes to review it?",
			Conditions: Conditions{MinScore: intPtr(60)},
		},
		{
			ID:      TemplateNurtureTouch,
			Channel: ActionEmail,
			Subject: "Resources for {{industry}}",
			Body: "Hi {{name}},\n\nWhile you're in the planning phase, here are some resources other " +
				"companies in {{industry}} found useful. We're here whenever you're ready.",
			Conditions: Conditions{Urgencies: []model.Urgency{model.UrgencyPlanning}},
		},
	}
}

func containsIndustry(list []model.Industry, v model.Industry) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsBudget(list []model.BudgetRange, v model.BudgetRange) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsUrgency(list []model.Urgency, v model.Urgency) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }

package followup

import (
	"strings"

	"leadintel_backend/internal/model"
)

// RenderedMessage is the channel-ready output of template rendering.
type RenderedMessage struct {
	Subject string
	Body    string
}

// RenderContent substitutes the lead's attributes into the action's
// template. Missing lead fields fall back to neutral phrases so a rendered
// message never ships with an empty placeholder. Unknown template IDs
// render empty; rendering is pure and idempotent.
func (s *Scheduler) RenderContent(action Action, lead model.LeadAttributes) RenderedMessage {
	tmpl, ok := s.templates[action.TemplateID]
	if !ok {
		return RenderedMessage{}
	}

	replacer := strings.NewReplacer(
		"{{name}}", fallback(lead.Name, "Valued Customer"),
		"{{company}}", fallback(lead.Company, "your company"),
		"{{product_category}}", fallback(lead.ProductCategory, "our products"),
		"{{industry}}", fallback(string(lead.IndustrySector), "your industry"),
		"{{budget_range}}", fallback(string(lead.BudgetRange), "your budget"),
	)
	return RenderedMessage{
		Subject: replacer.Replace(tmpl.Subject),
		Body:    replacer.Replace(tmpl.Body),
	}
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

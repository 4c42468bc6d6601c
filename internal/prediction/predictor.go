// Package prediction estimates conversion probability, timing, and deal
// value for a scored lead. This is a fixed heuristic, not a trained model:
// reproducibility depends on the tier tables and clamp points, not on any
// learned artifact. Like the scorer it is pure and never fails for
// valid-shaped input.
package prediction

import (
	"math"
	"strings"

	"leadintel_backend/internal/model"
)

var companySizeTags = map[model.CompanySize]FactorTag{
	model.CompanyLarge:  TagCompanyLarge,
	model.CompanyMedium: TagCompanyMedium,
	model.CompanySmall:  TagCompanySmall,
}

var industryTags = map[model.Industry]FactorTag{
	model.IndustryOilGas:        TagIndustryOilGas,
	model.IndustryMining:        TagIndustryMining,
	model.IndustryConstruction:  TagIndustryConstruction,
	model.IndustryManufacturing: TagIndustryManufacturing,
	model.IndustryUtilities:     TagIndustryUtilities,
	model.IndustryMarine:        TagIndustryMarine,
	model.IndustryAgriculture:   TagIndustryAgriculture,
	model.IndustryLogistics:     TagIndustryLogistics,
	model.IndustryOther:         TagIndustryOther,
}

var budgetTags = map[model.BudgetRange]FactorTag{
	model.BudgetUnder10K:  TagBudgetUnder10K,
	model.Budget10KTo50K:  TagBudget10KTo50K,
	model.Budget50KTo200K: TagBudget50KTo200K,
	model.Budget200KTo1M:  TagBudget200KTo1M,
	model.BudgetOver1M:    TagBudgetOver1M,
}

var authorityTags = map[model.DecisionAuthority]FactorTag{
	model.AuthorityDecisionMaker: TagAuthorityDecisionMaker,
	model.AuthorityInfluencer:    TagAuthorityInfluencer,
	model.AuthorityEndUser:       TagAuthorityEndUser,
	model.AuthorityGatekeeper:    TagAuthorityGatekeeper,
}

var urgencyTags = map[model.Urgency]FactorTag{
	model.UrgencyImmediate: TagUrgencyImmediate,
	model.UrgencyOneToTwo:  TagUrgencyOneToTwo,
	model.UrgencyPlanning:  TagUrgencyPlanning,
}

var timelineTags = map[model.ProjectTimeline]FactorTag{
	model.TimelineImmediate:     TagTimelineImmediate,
	model.TimelineWithinMonth:   TagTimelineWithinMonth,
	model.TimelineWithinQuarter: TagTimelineWithinQuarter,
	model.TimelineWithinYear:    TagTimelineWithinYear,
	model.TimelinePlanningPhase: TagTimelinePlanningPhase,
}

// Predictor derives conversion estimates from lead attributes and a score
// breakdown, parameterized by an immutable model configuration.
type Predictor struct {
	cfg Config
}

// New creates a predictor for the given model configuration.
func New(cfg Config) *Predictor {
	return &Predictor{cfg: cfg}
}

// Predict estimates the probability, confidence, time-to-conversion, and
// expected value for a lead given its score breakdown.
func (p *Predictor) Predict(lead model.LeadAttributes, breakdown model.ScoreBreakdown) model.ConversionPrediction {
	positive, negative := p.collectFactors(lead, breakdown)

	// Positive factors multiply, negative factors divide, clamp last.
	// The order of operations is part of the model contract: probabilities
	// saturate at the high end before clamping rather than averaging out.
	probability := float64(breakdown.Total) / 100.0
	for _, tag := range positive {
		probability *= p.cfg.Multipliers[tag]
	}
	for _, tag := range negative {
		probability /= p.cfg.Multipliers[tag]
	}
	probability = clamp01(probability)

	return model.ConversionPrediction{
		Probability:          probability,
		Confidence:           p.confidence(lead),
		TimeToConversionDays: p.timeToConversion(lead, probability),
		EstimatedValue:       p.estimatedValue(lead),
		Factors: model.PredictionFactors{
			Positive: tagStrings(positive),
			Negative: tagStrings(negative),
		},
	}
}

func (p *Predictor) collectFactors(lead model.LeadAttributes, breakdown model.ScoreBreakdown) (positive, negative []FactorTag) {
	if tag, ok := companySizeTags[lead.CompanySize]; ok {
		positive = append(positive, tag)
	}
	if tag, ok := industryTags[lead.IndustrySector]; ok {
		positive = append(positive, tag)
	}
	if tag, ok := budgetTags[lead.BudgetRange]; ok {
		positive = append(positive, tag)
	}
	if tag, ok := authorityTags[lead.DecisionAuthority]; ok {
		positive = append(positive, tag)
	}
	if tag, ok := urgencyTags[lead.Urgency]; ok {
		positive = append(positive, tag)
	}
	if tag, ok := timelineTags[lead.ProjectTimeline]; ok {
		positive = append(positive, tag)
	}

	switch {
	case breakdown.Engagement > 70:
		positive = append(positive, TagHighEngagement)
	case breakdown.Engagement > 40:
		positive = append(positive, TagMediumEngagement)
	default:
		negative = append(negative, TagLowEngagement)
	}

	if lead.PageViewsCount > 3 {
		positive = append(positive, TagMultiplePages)
	}
	if lead.EngagementTimeSecs > 300 {
		positive = append(positive, TagLongSession)
	}
	if breakdown.Engagement > 60 {
		positive = append(positive, TagFormCompletion)
	}
	if lead.DocumentsDownloaded > 0 {
		positive = append(positive, TagDocumentDownload)
	}

	return positive, negative
}

// confidence reflects how complete the lead profile is, not how good it is.
func (p *Predictor) confidence(lead model.LeadAttributes) float64 {
	present := 0
	checklist := []bool{
		strings.TrimSpace(lead.Name) != "",
		strings.TrimSpace(lead.Email) != "",
		strings.TrimSpace(lead.Phone) != "",
		strings.TrimSpace(lead.Company) != "",
		lead.CompanySize != "",
		lead.IndustrySector != "",
		lead.BudgetRange != "",
		lead.DecisionAuthority != "",
		lead.Urgency != "",
		lead.ProjectTimeline != "",
	}
	for _, ok := range checklist {
		if ok {
			present++
		}
	}

	confidence := 0.5 + 0.3*float64(present)/float64(len(checklist))
	if lead.EngagementTimeSecs > 0 {
		confidence += 0.1
	}
	if lead.PageViewsCount > 1 {
		confidence += 0.1
	}
	return clamp01(confidence)
}

// timeToConversion picks a base horizon from urgency, tightens it with the
// project timeline, then stretches it inversely with probability.
func (p *Predictor) timeToConversion(lead model.LeadAttributes, probability float64) int {
	base := p.cfg.DefaultBaseDays
	if days, ok := p.cfg.UrgencyBaseDays[lead.Urgency]; ok {
		base = days
	}

	switch lead.ProjectTimeline {
	case model.TimelineImmediate:
		base = minInt(base, 7)
	case model.TimelineWithinMonth:
		base = minInt(base, 30)
	case model.TimelineWithinQuarter:
		base = minInt(base, 90)
	case model.TimelinePlanningPhase:
		base = maxInt(base, 180)
	}

	days := int(math.Round(float64(base) / (probability + 0.1)))
	if days < 1 {
		days = 1
	}
	return days
}

func (p *Predictor) estimatedValue(lead model.LeadAttributes) float64 {
	value := p.cfg.DefaultBaseValue
	if base, ok := p.cfg.BudgetBaseValue[lead.BudgetRange]; ok {
		value = base
	}
	if factor, ok := p.cfg.CompanySizeValueFactor[lead.CompanySize]; ok {
		value *= factor
	}
	if factor, ok := p.cfg.IndustryValueFactor[lead.IndustrySector]; ok {
		value *= factor
	}
	return value
}

func tagStrings(tags []FactorTag) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = string(tag)
	}
	return out
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

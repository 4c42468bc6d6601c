package prediction

import "leadintel_backend/internal/model"

// FactorTag is a closed enumeration of the conversion factors the predictor
// can emit. Every tag has exactly one entry in the multiplier table; an
// unconfigured tag is a test failure, not a silent 1.0 default.
type FactorTag string

const (
	TagCompanyLarge  FactorTag = "company_large"
	TagCompanyMedium FactorTag = "company_medium"
	TagCompanySmall  FactorTag = "company_small"

	TagIndustryOilGas        FactorTag = "industry_oil_gas"
	TagIndustryMining        FactorTag = "industry_mining"
	TagIndustryConstruction  FactorTag = "industry_construction"
	TagIndustryManufacturing FactorTag = "industry_manufacturing"
	TagIndustryUtilities     FactorTag = "industry_utilities"
	TagIndustryMarine        FactorTag = "industry_marine"
	TagIndustryAgriculture   FactorTag = "industry_agriculture"
	TagIndustryLogistics     FactorTag = "industry_logistics"
	TagIndustryOther         FactorTag = "industry_other"

	TagBudgetUnder10K  FactorTag = "budget_under_10k"
	TagBudget10KTo50K  FactorTag = "budget_10k_50k"
	TagBudget50KTo200K FactorTag = "budget_50k_200k"
	TagBudget200KTo1M  FactorTag = "budget_200k_1m"
	TagBudgetOver1M    FactorTag = "budget_over_1m"

	TagAuthorityDecisionMaker FactorTag = "authority_decision_maker"
	TagAuthorityInfluencer    FactorTag = "authority_influencer"
	TagAuthorityEndUser       FactorTag = "authority_end_user"
	TagAuthorityGatekeeper    FactorTag = "authority_gatekeeper"

	TagUrgencyImmediate FactorTag = "urgency_immediate"
	TagUrgencyOneToTwo  FactorTag = "urgency_1-2_weeks"
	TagUrgencyPlanning  FactorTag = "urgency_planning"

	TagTimelineImmediate     FactorTag = "timeline_immediate"
	TagTimelineWithinMonth   FactorTag = "timeline_within_month"
	TagTimelineWithinQuarter FactorTag = "timeline_within_quarter"
	TagTimelineWithinYear    FactorTag = "timeline_within_year"
	TagTimelinePlanningPhase FactorTag = "timeline_planning_phase"

	TagHighEngagement   FactorTag = "high_engagement"
	TagMediumEngagement FactorTag = "medium_engagement"
	TagLowEngagement    FactorTag = "low_engagement"
	TagMultiplePages    FactorTag = "multiple_pages"
	TagLongSession      FactorTag = "long_session"
	TagFormCompletion   FactorTag = "form_completion"
	TagDocumentDownload FactorTag = "document_download"
)

// AllTags lists every FactorTag. Tests use it to verify the multiplier
// table is exhaustive.
var AllTags = []FactorTag{
	TagCompanyLarge, TagCompanyMedium, TagCompanySmall,
	TagIndustryOilGas, TagIndustryMining, TagIndustryConstruction,
	TagIndustryManufacturing, TagIndustryUtilities, TagIndustryMarine,
	TagIndustryAgriculture, TagIndustryLogistics, TagIndustryOther,
	TagBudgetUnder10K, TagBudget10KTo50K, TagBudget50KTo200K,
	TagBudget200KTo1M, TagBudgetOver1M,
	TagAuthorityDecisionMaker, TagAuthorityInfluencer,
	TagAuthorityEndUser, TagAuthorityGatekeeper,
	TagUrgencyImmediate, TagUrgencyOneToTwo, TagUrgencyPlanning,
	TagTimelineImmediate, TagTimelineWithinMonth, TagTimelineWithinQuarter,
	TagTimelineWithinYear, TagTimelinePlanningPhase,
	TagHighEngagement, TagMediumEngagement, TagLowEngagement,
	TagMultiplePages, TagLongSession, TagFormCompletion, TagDocumentDownload,
}

// Config parameterizes the predictor. Multipliers range 0.8-2.0; positive
// tags multiply the base probability, negative tags divide it.
type Config struct {
	Multipliers map[FactorTag]float64

	UrgencyBaseDays map[model.Urgency]int
	DefaultBaseDays int

	BudgetBaseValue  map[model.BudgetRange]float64
	DefaultBaseValue float64

	CompanySizeValueFactor map[model.CompanySize]float64
	IndustryValueFactor    map[model.Industry]float64
}

// DefaultConfig returns the production prediction model.
func DefaultConfig() Config {
	return Config{
		Multipliers: map[FactorTag]float64{
			TagCompanyLarge:  1.4,
			TagCompanyMedium: 1.2,
			TagCompanySmall:  1.05,

			TagIndustryOilGas:        1.5,
			TagIndustryMining:        1.4,
			TagIndustryConstruction:  1.3,
			TagIndustryManufacturing: 1.2,
			TagIndustryUtilities:     1.15,
			TagIndustryMarine:        1.1,
			TagIndustryAgriculture:   1.05,
			TagIndustryLogistics:     1.0,
			TagIndustryOther:         0.9,

			TagBudgetUnder10K:  0.9,
			TagBudget10KTo50K:  1.2,
			TagBudget50KTo200K: 1.4,
			TagBudget200KTo1M:  1.7,
			TagBudgetOver1M:    2.0,

			TagAuthorityDecisionMaker: 1.6,
			TagAuthorityInfluencer:    1.3,
			TagAuthorityEndUser:       1.1,
			TagAuthorityGatekeeper:    0.9,

			TagUrgencyImmediate: 1.8,
			TagUrgencyOneToTwo:  1.4,
			TagUrgencyPlanning:  0.9,

			TagTimelineImmediate:     1.6,
			TagTimelineWithinMonth:   1.4,
			TagTimelineWithinQuarter: 1.2,
			TagTimelineWithinYear:    1.0,
			TagTimelinePlanningPhase: 0.8,

			TagHighEngagement:   1.5,
			TagMediumEngagement: 1.2,
			TagLowEngagement:    1.4,
			TagMultiplePages:    1.2,
			TagLongSession:      1.3,
			TagFormCompletion:   1.2,
			TagDocumentDownload: 1.4,
		},

		UrgencyBaseDays: map[model.Urgency]int{
			model.UrgencyImmediate: 3,
			model.UrgencyOneToTwo:  10,
			model.UrgencyPlanning:  30,
		},
		DefaultBaseDays: 30,

		BudgetBaseValue: map[model.BudgetRange]float64{
			model.BudgetUnder10K:  7_500,
			model.Budget10KTo50K:  30_000,
			model.Budget50KTo200K: 125_000,
			model.Budget200KTo1M:  600_000,
			model.BudgetOver1M:    1_500_000,
		},
		DefaultBaseValue: 25_000,

		CompanySizeValueFactor: map[model.CompanySize]float64{
			model.CompanyLarge:  1.5,
			model.CompanyMedium: 1.2,
		},
		IndustryValueFactor: map[model.Industry]float64{
			model.IndustryOilGas:        2.0,
			model.IndustryConstruction:  1.5,
			model.IndustryManufacturing: 1.3,
		},
	}
}

package scoring

import "leadintel_backend/internal/model"

// Weights holds the six dimension weights of the scoring model.
// They must sum to 1.0.
type Weights struct {
	Profile    float64
	Behavior   float64
	Engagement float64
	Urgency    float64
	Company    float64
	Project    float64
}

// Sum returns the total of all dimension weights.
func (w Weights) Sum() float64 {
	return w.Profile + w.Behavior + w.Engagement + w.Urgency + w.Company + w.Project
}

// Config parameterizes the scorer. It is an immutable value passed in at
// construction time so multiple model versions can coexist in tests.
type Config struct {
	Weights Weights

	// Profile dimension
	BusinessEmailPoints float64
	PersonalEmailPoints float64
	CompanyNamePoints   float64
	PhonePoints         float64
	AuthorityPoints     map[model.DecisionAuthority]float64

	// Behavior dimension
	DevicePoints          map[model.DeviceType]float64
	PageViewPoints        float64
	PageViewCap           float64
	DocumentPoints        float64
	DocumentCap           float64
	ReferrerTradePoints   float64
	ReferrerSearchPoints  float64
	ReferrerSocialPoints  float64
	ReferrerUnknownPoints float64

	// Engagement dimension
	EngagementPointsPerMinute float64
	EngagementTimeCap         float64
	FormCompletionPoints      float64

	// Urgency dimension
	UrgencyPoints  map[model.Urgency]float64
	TimelinePoints map[model.ProjectTimeline]float64

	// Company dimension
	CompanySizePoints map[model.CompanySize]float64
	IndustryPoints    map[model.Industry]float64

	// Project dimension
	BudgetPoints          map[model.BudgetRange]float64
	QuantityPoints        float64
	ProductCategoryPoints float64
}

// DefaultConfig returns the production scoring model.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Profile:    0.25,
			Behavior:   0.20,
			Engagement: 0.15,
			Urgency:    0.15,
			Company:    0.15,
			Project:    0.10,
		},

		BusinessEmailPoints: 20,
		PersonalEmailPoints: 5,
		CompanyNamePoints:   15,
		PhonePoints:         10,
		AuthorityPoints: map[model.DecisionAuthority]float64{
			model.AuthorityDecisionMaker: 25,
			model.AuthorityInfluencer:    20,
			model.AuthorityEndUser:       15,
			model.AuthorityGatekeeper:    10,
		},

		DevicePoints: map[model.DeviceType]float64{
			model.DeviceDesktop: 15,
			model.DeviceTablet:  10,
			model.DeviceMobile:  5,
		},
		PageViewPoints:        5,
		PageViewCap:           25,
		DocumentPoints:        10,
		DocumentCap:           20,
		ReferrerTradePoints:   20,
		ReferrerSearchPoints:  12,
		ReferrerSocialPoints:  8,
		ReferrerUnknownPoints: 5,

		EngagementPointsPerMinute: 2,
		EngagementTimeCap:         40,
		FormCompletionPoints:      30,

		UrgencyPoints: map[model.Urgency]float64{
			model.UrgencyImmediate: 50,
			model.UrgencyOneToTwo:  30,
			model.UrgencyPlanning:  15,
		},
		TimelinePoints: map[model.ProjectTimeline]float64{
			model.TimelineImmediate:     25,
			model.TimelineWithinMonth:   20,
			model.TimelineWithinQuarter: 15,
			model.TimelineWithinYear:    10,
			model.TimelinePlanningPhase: 5,
		},

		CompanySizePoints: map[model.CompanySize]float64{
			model.CompanyLarge:  40,
			model.CompanyMedium: 25,
			model.CompanySmall:  15,
		},
		IndustryPoints: map[model.Industry]float64{
			model.IndustryOilGas:        30,
			model.IndustryMining:        28,
			model.IndustryConstruction:  25,
			model.IndustryManufacturing: 22,
			model.IndustryUtilities:     18,
			model.IndustryMarine:        15,
			model.IndustryAgriculture:   12,
			model.IndustryLogistics:     10,
			model.IndustryOther:         5,
		},

		BudgetPoints: map[model.BudgetRange]float64{
			model.BudgetUnder10K:  10,
			model.Budget10KTo50K:  20,
			model.Budget50KTo200K: 30,
			model.Budget200KTo1M:  40,
			model.BudgetOver1M:    50,
		},
		QuantityPoints:        20,
		ProductCategoryPoints: 15,
	}
}

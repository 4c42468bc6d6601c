// Package model defines the lead intelligence domain types shared by the
// scoring, prediction, and follow-up modules.
package model

// Urgency is the lead's self-reported purchase urgency.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyOneToTwo  Urgency = "1-2_weeks"
	UrgencyPlanning  Urgency = "planning"
)

// DeviceType is the device class used during the browsing session.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceTablet  DeviceType = "tablet"
	DeviceMobile  DeviceType = "mobile"
)

// DecisionAuthority describes the contact's role in the buying decision.
type DecisionAuthority string

const (
	AuthorityDecisionMaker DecisionAuthority = "decision_maker"
	AuthorityInfluencer    DecisionAuthority = "influencer"
	AuthorityEndUser       DecisionAuthority = "end_user"
	AuthorityGatekeeper    DecisionAuthority = "gatekeeper"
)

// CompanySize buckets the lead's company headcount.
type CompanySize string

const (
	CompanyLarge  CompanySize = "large"
	CompanyMedium CompanySize = "medium"
	CompanySmall  CompanySize = "small"
)

// Industry is the lead's declared industry sector.
type Industry string

const (
	IndustryOilGas        Industry = "oil_gas"
	IndustryMining        Industry = "mining"
	IndustryConstruction  Industry = "construction"
	IndustryManufacturing Industry = "manufacturing"
	IndustryUtilities     Industry = "utilities"
	IndustryMarine        Industry = "marine"
	IndustryAgriculture   Industry = "agriculture"
	IndustryLogistics     Industry = "logistics"
	IndustryOther         Industry = "other"
)

// BudgetRange buckets the declared project budget.
type BudgetRange string

const (
	BudgetUnder10K  BudgetRange = "under_10k"
	Budget10KTo50K  BudgetRange = "10k_50k"
	Budget50KTo200K BudgetRange = "50k_200k"
	Budget200KTo1M  BudgetRange = "200k_1m"
	BudgetOver1M    BudgetRange = "over_1m"
)

// ProjectTimeline is the declared project start horizon.
type ProjectTimeline string

const (
	TimelineImmediate     ProjectTimeline = "immediate"
	TimelineWithinMonth   ProjectTimeline = "within_month"
	TimelineWithinQuarter ProjectTimeline = "within_quarter"
	TimelineWithinYear    ProjectTimeline = "within_year"
	TimelinePlanningPhase ProjectTimeline = "planning_phase"
)

// Priority orders follow-up work. Lower rank dispatches first.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

var priorityRanks = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Rank returns the sort rank for the priority. Unknown priorities sort last.
func (p Priority) Rank() int {
	if rank, ok := priorityRanks[p]; ok {
		return rank
	}
	return len(priorityRanks)
}

// LeadAttributes is the read-only snapshot of a form submission plus
// browsing behavior, produced upstream. The engine never mutates it.
// Empty strings and zero counts mean the field was not provided.
type LeadAttributes struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`

	CompanySize    CompanySize `json:"companySize"`
	IndustrySector Industry    `json:"industrySector"`

	BudgetRange       BudgetRange       `json:"budgetRange"`
	DecisionAuthority DecisionAuthority `json:"decisionAuthority"`
	ProjectTimeline   ProjectTimeline   `json:"projectTimeline"`
	QuantityEstimate  *int              `json:"quantityEstimate,omitempty"`
	ProductCategory   string            `json:"productCategory"`

	DeviceType          DeviceType `json:"deviceType"`
	PageViewsCount      int        `json:"pageViewsCount"`
	DocumentsDownloaded int        `json:"documentsDownloaded"`
	EngagementTimeSecs  int        `json:"totalEngagementTime"`
	Referrer            string     `json:"referrer"`
	Message             string     `json:"message"`

	Urgency Urgency `json:"urgency"`
}

// RoutingDecision is the externally-computed assignment of a lead to a
// salesperson or team. Routing logic is not part of this engine.
type RoutingDecision struct {
	AssignedTo string   `json:"assignedTo"`
	Priority   Priority `json:"priority"`
}

package transport

import (
	"leadintel_backend/internal/followup"
	"leadintel_backend/internal/model"
)

// SubmitLeadRequest is the public lead submission payload: the form fields
// plus the browsing metrics collected client-side.
type SubmitLeadRequest struct {
	LeadID  string `json:"leadId,omitempty" validate:"omitempty,max=64"`
	Name    string `json:"name" validate:"omitempty,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Company string `json:"company,omitempty" validate:"omitempty,max=200"`

	CompanySize       string `json:"companySize,omitempty" validate:"omitempty,oneof=large medium small"`
	IndustrySector    string `json:"industrySector,omitempty" validate:"omitempty,oneof=oil_gas mining construction manufacturing utilities marine agriculture logistics other"`
	BudgetRange       string `json:"budgetRange,omitempty" validate:"omitempty,oneof=under_10k 10k_50k 50k_200k 200k_1m over_1m"`
	DecisionAuthority string `json:"decisionAuthority,omitempty" validate:"omitempty,oneof=decision_maker influencer end_user gatekeeper"`
	ProjectTimeline   string `json:"projectTimeline,omitempty" validate:"omitempty,oneof=immediate within_month within_quarter within_year planning_phase"`
	Urgency           string `json:"urgency,omitempty" validate:"omitempty,oneof=immediate 1-2_weeks planning"`

	QuantityEstimate *int   `json:"quantityEstimate,omitempty" validate:"omitempty,min=0"`
	ProductCategory  string `json:"productCategory,omitempty" validate:"omitempty,max=200"`
	Message          string `json:"message,omitempty" validate:"omitempty,max=5000"`

	DeviceType          string `json:"deviceType,omitempty" validate:"omitempty,oneof=desktop tablet mobile"`
	PageViewsCount      int    `json:"pageViewsCount" validate:"min=0"`
	DocumentsDownloaded int    `json:"documentsDownloaded" validate:"min=0"`
	EngagementTimeSecs  int    `json:"totalEngagementTime" validate:"min=0"`
	Referrer            string `json:"referrer,omitempty" validate:"omitempty,max=2000"`
}

// Attributes converts the request into the engine's lead snapshot.
func (r SubmitLeadRequest) Attributes() model.LeadAttributes {
	return model.LeadAttributes{
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Company:             r.Company,
		CompanySize:         model.CompanySize(r.CompanySize),
		IndustrySector:      model.Industry(r.IndustrySector),
		BudgetRange:         model.BudgetRange(r.BudgetRange),
		DecisionAuthority:   model.DecisionAuthority(r.DecisionAuthority),
		ProjectTimeline:     model.ProjectTimeline(r.ProjectTimeline),
		Urgency:             model.Urgency(r.Urgency),
		QuantityEstimate:    r.QuantityEstimate,
		ProductCategory:     r.ProductCategory,
		Message:             r.Message,
		DeviceType:          model.DeviceType(r.DeviceType),
		PageViewsCount:      r.PageViewsCount,
		DocumentsDownloaded: r.DocumentsDownloaded,
		EngagementTimeSecs:  r.EngagementTimeSecs,
		Referrer:            r.Referrer,
	}
}

// QualificationResponse is the full result of processing one submission.
type QualificationResponse struct {
	LeadID     string                     `json:"leadId"`
	Score      model.ScoreBreakdown       `json:"score"`
	Prediction model.ConversionPrediction `json:"prediction"`
	Routing    model.RoutingDecision      `json:"routing"`
	Schedule   followup.Schedule          `json:"schedule"`
}

// CompleteActionRequest reports a delivery or task outcome.
type CompleteActionRequest struct {
	Success bool `json:"success"`
}

// ResponseReceivedRequest registers an inbound reply from a lead.
type ResponseReceivedRequest struct {
	Channel string `json:"channel,omitempty" validate:"omitempty,oneof=email phone_call whatsapp other"`
}

// ConversionStatusRequest moves a lead through the conversion funnel.
type ConversionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active nurturing converted lost"`
}

// ScheduleResponse wraps a lead's follow-up schedule.
type ScheduleResponse struct {
	Schedule followup.Schedule `json:"schedule"`
}

// ActionListResponse wraps a list of follow-up actions.
type ActionListResponse struct {
	Items []followup.Action `json:"items"`
	Total int               `json:"total"`
}

// QualificationListResponse wraps persisted qualification records.
type QualificationListResponse struct {
	Items []QualificationRecord `json:"items"`
	Total int                   `json:"total"`
}

// QualificationRecord is the audit view of a processed submission.
type QualificationRecord struct {
	LeadID      string  `json:"leadId"`
	Total       int     `json:"total"`
	Probability float64 `json:"probability"`
	SequenceID  string  `json:"sequenceId,omitempty"`
	Priority    string  `json:"priority"`
	AssignedTo  string  `json:"assignedTo"`
	CreatedAt   string  `json:"createdAt"`
}

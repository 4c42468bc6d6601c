// Package scoring computes the six-dimension weighted quality score for a
// lead snapshot. The scorer is a pure function over its inputs: no side
// effects, no error path. Missing optional fields contribute zero to their
// sub-factor and a complete breakdown is returned for any partial input.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"leadintel_backend/internal/model"
)

// personalEmailDomains are consumer mail providers. A business domain is any
// other domain with a dot in it.
var personalEmailDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"aol.com":        true,
	"icloud.com":     true,
	"protonmail.com": true,
	"mail.com":       true,
	"gmx.com":        true,
	"live.com":       true,
}

// tradeReferrerKeywords identify trade and industry referral sites, the
// highest-quality acquisition channel.
var tradeReferrerKeywords = []string{"trade", "industry", "directory", "b2b", "supplier", "expo"}

var searchReferrerKeywords = []string{"google", "bing", "duckduckgo", "yahoo", "search"}

var socialReferrerKeywords = []string{"facebook", "linkedin", "twitter", "instagram", "youtube", "tiktok"}

// Scorer computes lead quality scores using an immutable model configuration.
type Scorer struct {
	cfg Config
}

// New creates a scorer for the given model configuration.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score evaluates a lead snapshot and returns its weighted breakdown.
// Deterministic: identical input always yields an identical breakdown.
func (s *Scorer) Score(lead model.LeadAttributes) model.ScoreBreakdown {
	details := map[string]model.FactorDetail{}

	profile := s.scoreProfile(lead, details)
	behavior := s.scoreBehavior(lead, details)
	engagement := s.scoreEngagement(lead, details)
	urgency := s.scoreUrgency(lead, details)
	company := s.scoreCompany(lead, details)
	project := s.scoreProject(lead, details)

	w := s.cfg.Weights
	total := profile*w.Profile +
		behavior*w.Behavior +
		engagement*w.Engagement +
		urgency*w.Urgency +
		company*w.Company +
		project*w.Project

	return model.ScoreBreakdown{
		Total:      clampScore(total),
		Profile:    profile,
		Behavior:   behavior,
		Engagement: engagement,
		Urgency:    urgency,
		Company:    company,
		Project:    project,
		Details:    details,
	}
}

// scoreProfile evaluates who the lead is: email quality, company name,
// phone, and decision authority.
func (s *Scorer) scoreProfile(lead model.LeadAttributes, details map[string]model.FactorDetail) float64 {
	weight := s.cfg.Weights.Profile
	score := 0.0

	if domain := emailDomain(lead.Email); domain != "" {
		if personalEmailDomains[domain] {
			score += s.addFactor(details, "email_domain", s.cfg.PersonalEmailPoints, weight,
				"personal email provider ("+domain+")")
		} else {
			score += s.addFactor(details, "email_domain", s.cfg.BusinessEmailPoints, weight,
				"business email domain ("+domain+")")
		}
	}

	if strings.TrimSpace(lead.Company) != "" {
		score += s.addFactor(details, "company_name", s.cfg.CompanyNamePoints, weight,
			"company name provided")
	}

	if strings.TrimSpace(lead.Phone) != "" {
		score += s.addFactor(details, "phone", s.cfg.PhonePoints, weight,
			"phone number provided")
	}

	if pts, ok := s.cfg.AuthorityPoints[lead.DecisionAuthority]; ok {
		score += s.addFactor(details, "decision_authority", pts, weight,
			"decision authority: "+string(lead.DecisionAuthority))
	}

	return clampDimension(score)
}

// scoreBehavior evaluates browsing behavior: device class, page views,
// document downloads, and referrer channel.
func (s *Scorer) scoreBehavior(lead model.LeadAttributes, details map[string]model.FactorDetail) float64 {
	weight := s.cfg.Weights.Behavior
	score := 0.0

	if pts, ok := s.cfg.DevicePoints[lead.DeviceType]; ok {
		score += s.addFactor(details, "device_type", pts, weight,
			"browsing on "+string(lead.DeviceType))
	}

	if lead.PageViewsCount > 0 {
		pts := math.Min(float64(lead.PageViewsCount)*s.cfg.PageViewPoints, s.cfg.PageViewCap)
		score += s.addFactor(details, "page_views", pts, weight,
			fmt.Sprintf("%d pages viewed", lead.PageViewsCount))
	}

	if lead.DocumentsDownloaded > 0 {
		pts := math.Min(float64(lead.DocumentsDownloaded)*s.cfg.DocumentPoints, s.cfg.DocumentCap)
		score += s.addFactor(details, "documents", pts, weight,
			fmt.Sprintf("%d documents downloaded", lead.DocumentsDownloaded))
	}

	if referrer := strings.ToLower(strings.TrimSpace(lead.Referrer)); referrer != "" {
		pts, reason := s.classifyReferrer(referrer)
		score += s.addFactor(details, "referrer", pts, weight, reason)
	}

	return clampDimension(score)
}

func (s *Scorer) classifyReferrer(referrer string) (float64, string) {
	if containsAny(referrer, tradeReferrerKeywords) {
		return s.cfg.ReferrerTradePoints, "referred by trade/industry site"
	}
	if containsAny(referrer, searchReferrerKeywords) {
		return s.cfg.ReferrerSearchPoints, "referred by search engine"
	}
	if containsAny(referrer, socialReferrerKeywords) {
		return s.cfg.ReferrerSocialPoints, "referred by social media"
	}
	return s.cfg.ReferrerUnknownPoints, "unclassified referrer"
}

// scoreEngagement evaluates session depth: time on site, the completed
// inquiry form (reaching the scorer implies completion), and message length.
func (s *Scorer) scoreEngagement(lead model.LeadAttributes, details map[string]model.FactorDetail) float64 {
	weight := s.cfg.Weights.Engagement
	score := 0.0

	if lead.EngagementTimeSecs > 0 {
		minutes := float64(lead.EngagementTimeSecs) / 60.0
		pts := math.Min(minutes*s.cfg.EngagementPointsPerMinute, s.cfg.EngagementTimeCap)
		score += s.addFactor(details, "engagement_time", pts, weight,
			fmt.Sprintf("%d seconds on site", lead.EngagementTimeSecs))
	}

	score += s.addFactor(details, "form_completion", s.cfg.FormCompletionPoints, weight,
		"inquiry form completed")

	if msg := strings.TrimSpace(lead.Message); msg != "" {
		pts := messageLengthPoints(len(msg))
		score += s.addFactor(details, "message_length", pts, weight,
			fmt.Sprintf("message of %d characters", len(msg)))
	}

	return clampDimension(score)
}

func messageLengthPoints(length int) float64 {
	switch {
	case length > 200:
		return 20
	case length > 100:
		return 15
	case length > 50:
		return 10
	default:
		return 5
	}
}

// scoreUrgency evaluates how soon the lead wants to buy.
func (s *Scorer) scoreUrgency(lead model.LeadAttributes, details map[string]model.FactorDetail) float64 {
	weight := s.cfg.Weights.Urgency
	score := 0.0

	if pts, ok := s.cfg.UrgencyPoints[lead.Urgency]; ok {
		score += s.addFactor(details, "urgency", pts, weight,
			"urgency: "+string(lead.Urgency))
	}

	if pts, ok := s.cfg.TimelinePoints[lead.ProjectTimeline]; ok {
		score += s.addFactor(details, "project_timeline", pts, weight,
			"project timeline: "+string(lead.ProjectTimeline))
	}

	return clampDimension(score)
}

// scoreCompany evaluates firmographics: company size and industry sector.
func (s *Scorer) scoreCompany(lead model.LeadAttributes, details map[string]model.FactorDetail) float64 {
	weight := s.cfg.Weights.Company
	score := 0.0

	if pts, ok := s.cfg.CompanySizePoints[lead.CompanySize]; ok {
		score += s.addFactor(details, "company_size", pts, weight,
			string(lead.CompanySize)+" company")
	}

	if pts, ok := s.cfg.IndustryPoints[lead.IndustrySector]; ok {
		score += s.addFactor(details, "industry", pts, weight,
			"industry sector: "+string(lead.IndustrySector))
	}

	return clampDimension(score)
}

// scoreProject evaluates the deal itself: budget, quantity, category.
func (s *Scorer) scoreProject(lead model.LeadAttributes, details map[string]model.FactorDetail) float64 {
	weight := s.cfg.Weights.Project
	score := 0.0

	if pts, ok := s.cfg.BudgetPoints[lead.BudgetRange]; ok {
		score += s.addFactor(details, "budget", pts, weight,
			"budget range: "+string(lead.BudgetRange))
	}

	if lead.QuantityEstimate != nil {
		score += s.addFactor(details, "quantity", s.cfg.QuantityPoints, weight,
			fmt.Sprintf("quantity estimate given (%d)", *lead.QuantityEstimate))
	}

	if strings.TrimSpace(lead.ProductCategory) != "" {
		score += s.addFactor(details, "product_category", s.cfg.ProductCategoryPoints, weight,
			"product category: "+lead.ProductCategory)
	}

	return clampDimension(score)
}

func (s *Scorer) addFactor(details map[string]model.FactorDetail, key string, points, weight float64, reason string) float64 {
	if math.Abs(points) < 0.01 {
		return 0
	}
	details[key] = model.FactorDetail{
		// Rounded to 1 decimal place for cleaner factor display
		Score:  math.Round(points*10) / 10,
		Weight: weight,
		Reason: reason,
	}
	return points
}

func emailDomain(email string) string {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(trimmed, "@")
	if at < 0 || at == len(trimmed)-1 {
		return ""
	}
	domain := trimmed[at+1:]
	if !strings.Contains(domain, ".") {
		return ""
	}
	return domain
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func clampDimension(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

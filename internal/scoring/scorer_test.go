package scoring

import (
	"math"
	"reflect"
	"testing"

	"leadintel_backend/internal/model"
)

func fullLead() model.LeadAttributes {
	qty := 40
	return model.LeadAttributes{
		Name:                "Jane Doe",
		Email:               "jane@acme-industrial.com",
		Phone:               "+14155552671",
		Company:             "Acme Industrial",
		CompanySize:         model.CompanyLarge,
		IndustrySector:      model.IndustryOilGas,
		BudgetRange:         model.BudgetOver1M,
		DecisionAuthority:   model.AuthorityDecisionMaker,
		ProjectTimeline:     model.TimelineImmediate,
		QuantityEstimate:    &qty,
		ProductCategory:     "hydraulic pumps",
		DeviceType:          model.DeviceDesktop,
		PageViewsCount:      12,
		DocumentsDownloaded: 4,
		EngagementTimeSecs:  1500,
		Referrer:            "https://industrysupplier-directory.com/listing",
		Message:             "We operate 14 offshore platforms and need a full replacement program for our hydraulic pump inventory, including installation support and an ongoing maintenance contract for the next five years.",
		Urgency:             model.UrgencyImmediate,
	}
}

func TestWeightsSumToOne(t *testing.T) {
	if sum := DefaultConfig().Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("weights sum to %v, want 1.0", sum)
	}
}

func TestScoreBounds(t *testing.T) {
	s := New(DefaultConfig())

	for name, lead := range map[string]model.LeadAttributes{
		"empty": {},
		"full":  fullLead(),
	} {
		got := s.Score(lead)
		if got.Total < 0 || got.Total > 100 {
			t.Fatalf("%s lead: total %d out of [0,100]", name, got.Total)
		}
		for dim, v := range map[string]float64{
			"profile":    got.Profile,
			"behavior":   got.Behavior,
			"engagement": got.Engagement,
			"urgency":    got.Urgency,
			"company":    got.Company,
			"project":    got.Project,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s lead: dimension %s = %v out of [0,100]", name, dim, v)
			}
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := New(DefaultConfig())
	lead := fullLead()
	a := s.Score(lead)
	b := s.Score(lead)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same input produced different breakdowns")
	}
}

func TestHighIntentLeadQualifiesForHighValueSequence(t *testing.T) {
	// A fully populated high-intent lead must clear the 70-point bar.
	got := New(DefaultConfig()).Score(fullLead())
	if got.Total < 70 {
		t.Fatalf("high-intent lead scored %d, want >= 70", got.Total)
	}
}

func TestScoreMonotonicOnAddedPositives(t *testing.T) {
	s := New(DefaultConfig())
	base := model.LeadAttributes{Email: "someone@gmail.com"}
	prev := s.Score(base).Total

	steps := []func(*model.LeadAttributes){
		func(l *model.LeadAttributes) { l.Company = "Acme" },
		func(l *model.LeadAttributes) { l.Phone = "+14155552671" },
		func(l *model.LeadAttributes) { l.DecisionAuthority = model.AuthorityDecisionMaker },
		func(l *model.LeadAttributes) { l.DeviceType = model.DeviceDesktop },
		func(l *model.LeadAttributes) { l.PageViewsCount = 6 },
		func(l *model.LeadAttributes) { l.DocumentsDownloaded = 2 },
		func(l *model.LeadAttributes) { l.EngagementTimeSecs = 600 },
		func(l *model.LeadAttributes) { l.Urgency = model.UrgencyImmediate },
		func(l *model.LeadAttributes) { l.CompanySize = model.CompanyLarge },
		func(l *model.LeadAttributes) { l.IndustrySector = model.IndustryOilGas },
		func(l *model.LeadAttributes) { l.BudgetRange = model.BudgetOver1M },
	}
	for i, step := range steps {
		step(&base)
		got := s.Score(base).Total
		if got < prev {
			t.Fatalf("step %d decreased total: %d -> %d", i, prev, got)
		}
		prev = got
	}
}

func TestScoreUrgencyMonotonicAcrossLevels(t *testing.T) {
	s := New(DefaultConfig())
	lead := fullLead()

	levels := []model.Urgency{
		"",
		model.UrgencyPlanning,
		model.UrgencyOneToTwo,
		model.UrgencyImmediate,
	}
	prev := -1.0
	for _, level := range levels {
		lead.Urgency = level
		got := s.Score(lead).Urgency
		if got < prev {
			t.Fatalf("urgency %q scored %.1f, below the previous level %.1f", level, got, prev)
		}
		prev = got
	}
}

func TestBusinessEmailOutscoresPersonal(t *testing.T) {
	s := New(DefaultConfig())
	business := s.Score(model.LeadAttributes{Email: "jane@acme-industrial.com"})
	personal := s.Score(model.LeadAttributes{Email: "jane@gmail.com"})
	if business.Profile <= personal.Profile {
		t.Fatalf("business profile %v not above personal %v", business.Profile, personal.Profile)
	}

	detail, ok := personal.Details["email_domain"]
	if !ok {
		t.Fatalf("email_domain factor missing")
	}
	if detail.Score != DefaultConfig().PersonalEmailPoints {
		t.Fatalf("personal email points = %v, want %v", detail.Score, DefaultConfig().PersonalEmailPoints)
	}
}

func TestPageViewPointsCapped(t *testing.T) {
	s := New(DefaultConfig())
	few := s.Score(model.LeadAttributes{PageViewsCount: 5})
	many := s.Score(model.LeadAttributes{PageViewsCount: 500})
	if many.Behavior != few.Behavior {
		t.Fatalf("page views past the cap changed behavior: %v vs %v", many.Behavior, few.Behavior)
	}
	if many.Details["page_views"].Score != DefaultConfig().PageViewCap {
		t.Fatalf("capped page view points = %v, want %v",
			many.Details["page_views"].Score, DefaultConfig().PageViewCap)
	}
}

func TestReferrerClassification(t *testing.T) {
	s := New(DefaultConfig())
	cfg := DefaultConfig()

	cases := []struct {
		referrer string
		want     float64
	}{
		{"https://b2b-machinery-directory.com", cfg.ReferrerTradePoints},
		{"https://www.google.com/search?q=pumps", cfg.ReferrerSearchPoints},
		{"https://www.linkedin.com/feed", cfg.ReferrerSocialPoints},
		{"https://some-blog.example.net", cfg.ReferrerUnknownPoints},
	}
	for _, tc := range cases {
		got := s.Score(model.LeadAttributes{Referrer: tc.referrer})
		if got.Details["referrer"].Score != tc.want {
			t.Fatalf("referrer %q scored %v, want %v",
				tc.referrer, got.Details["referrer"].Score, tc.want)
		}
	}
}

func TestMessageLengthTiers(t *testing.T) {
	cases := []struct {
		length int
		want   float64
	}{
		{10, 5},
		{51, 10},
		{101, 15},
		{201, 20},
	}
	for _, tc := range cases {
		if got := messageLengthPoints(tc.length); got != tc.want {
			t.Fatalf("messageLengthPoints(%d) = %v, want %v", tc.length, got, tc.want)
		}
	}
}

func TestEmptyLeadStillGetsFormCompletion(t *testing.T) {
	// Reaching the scorer means the form was submitted, so even an
	// otherwise empty lead carries the completion factor.
	got := New(DefaultConfig()).Score(model.LeadAttributes{})
	if _, ok := got.Details["form_completion"]; !ok {
		t.Fatalf("form_completion factor missing on empty lead")
	}
	if got.Engagement <= 0 {
		t.Fatalf("engagement dimension = %v, want > 0", got.Engagement)
	}
}

func TestEmailDomainParsing(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"jane@acme.com", "acme.com"},
		{"  JANE@ACME.COM  ", "acme.com"},
		{"not-an-email", ""},
		{"trailing@", ""},
		{"no-tld@localhost", ""},
	}
	for _, tc := range cases {
		if got := emailDomain(tc.in); got != tc.want {
			t.Fatalf("emailDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

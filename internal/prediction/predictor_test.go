package prediction

import (
	"reflect"
	"testing"

	"leadintel_backend/internal/model"
)

func strongLead() model.LeadAttributes {
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
		Urgency:             model.UrgencyImmediate,
		PageViewsCount:      8,
		DocumentsDownloaded: 2,
		EngagementTimeSecs:  900,
	}
}

func TestFactorMultiplierTableComplete(t *testing.T) {
	cfg := DefaultConfig()
	for _, tag := range AllTags {
		m, ok := cfg.Multipliers[tag]
		if !ok {
			t.Fatalf("tag %s has no multiplier", tag)
		}
		if m < 0.8 || m > 2.0 {
			t.Fatalf("tag %s multiplier %v outside [0.8, 2.0]", tag, m)
		}
	}
	if len(cfg.Multipliers) != len(AllTags) {
		t.Fatalf("multiplier table has %d entries, AllTags has %d",
			len(cfg.Multipliers), len(AllTags))
	}
}

func TestPredictProbabilitySaturatesHighEnd(t *testing.T) {
	// Positive factors multiply before the clamp, so a strong lead pins the
	// probability at exactly 1.0 instead of averaging below it.
	p := New(DefaultConfig())
	got := p.Predict(strongLead(), model.ScoreBreakdown{Total: 80, Engagement: 85})
	if got.Probability != 1.0 {
		t.Fatalf("probability = %v, want saturated 1.0", got.Probability)
	}
	if len(got.Factors.Positive) == 0 {
		t.Fatalf("strong lead produced no positive factors")
	}
	if len(got.Factors.Negative) != 0 {
		t.Fatalf("strong lead produced negative factors: %v", got.Factors.Negative)
	}
}

func TestPredictBounds(t *testing.T) {
	p := New(DefaultConfig())
	for _, total := range []int{0, 25, 50, 75, 100} {
		got := p.Predict(model.LeadAttributes{}, model.ScoreBreakdown{Total: total})
		if got.Probability < 0 || got.Probability > 1 {
			t.Fatalf("total %d: probability %v out of [0,1]", total, got.Probability)
		}
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Fatalf("total %d: confidence %v out of [0,1]", total, got.Confidence)
		}
		if got.TimeToConversionDays < 1 {
			t.Fatalf("total %d: timeToConversion %d below floor", total, got.TimeToConversionDays)
		}
		if got.EstimatedValue <= 0 {
			t.Fatalf("total %d: estimatedValue %v not positive", total, got.EstimatedValue)
		}
	}
}

func TestLowEngagementDividesProbability(t *testing.T) {
	p := New(DefaultConfig())
	base := model.ScoreBreakdown{Total: 50}

	low := p.Predict(model.LeadAttributes{}, base)
	if len(low.Factors.Negative) != 1 || low.Factors.Negative[0] != string(TagLowEngagement) {
		t.Fatalf("expected single low_engagement negative, got %v", low.Factors.Negative)
	}

	mid := base
	mid.Engagement = 50
	higher := p.Predict(model.LeadAttributes{}, mid)
	if higher.Probability <= low.Probability {
		t.Fatalf("medium engagement %v not above low engagement %v",
			higher.Probability, low.Probability)
	}
}

func TestConfidenceTracksCompleteness(t *testing.T) {
	p := New(DefaultConfig())

	empty := p.Predict(model.LeadAttributes{}, model.ScoreBreakdown{})
	if empty.Confidence != 0.5 {
		t.Fatalf("empty lead confidence = %v, want 0.5", empty.Confidence)
	}

	full := p.Predict(strongLead(), model.ScoreBreakdown{})
	if full.Confidence != 1.0 {
		t.Fatalf("complete lead confidence = %v, want 1.0", full.Confidence)
	}

	partial := model.LeadAttributes{Name: "Jane", Email: "jane@acme.com"}
	got := p.Predict(partial, model.ScoreBreakdown{}).Confidence
	if got <= empty.Confidence || got >= full.Confidence {
		t.Fatalf("partial lead confidence %v not between %v and %v",
			got, empty.Confidence, full.Confidence)
	}
}

func TestTimeToConversionUrgencyAndTimeline(t *testing.T) {
	p := New(DefaultConfig())

	cases := []struct {
		name        string
		urgency     model.Urgency
		timeline    model.ProjectTimeline
		probability float64
		want        int
	}{
		// 3 / (1.0 + 0.1) = 2.73 -> 3
		{"immediate hot", model.UrgencyImmediate, "", 1.0, 3},
		// 30 / (0.1 + 0.1) = 150
		{"planning cold", model.UrgencyPlanning, "", 0.1, 150},
		// planning base 30 stretched to the 180 floor: 180 / 1.1 = 163.6 -> 164
		{"planning phase floor", model.UrgencyPlanning, model.TimelinePlanningPhase, 1.0, 164},
		// default base 30 capped at 7 by timeline: 7 / 0.6 = 11.67 -> 12
		{"timeline tightens default", "", model.TimelineImmediate, 0.5, 12},
	}
	for _, tc := range cases {
		lead := model.LeadAttributes{Urgency: tc.urgency, ProjectTimeline: tc.timeline}
		if got := p.timeToConversion(lead, tc.probability); got != tc.want {
			t.Fatalf("%s: timeToConversion = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestEstimatedValueFactors(t *testing.T) {
	p := New(DefaultConfig())

	got := p.Predict(model.LeadAttributes{}, model.ScoreBreakdown{}).EstimatedValue
	if got != 25_000 {
		t.Fatalf("default estimated value = %v, want 25000", got)
	}

	lead := model.LeadAttributes{
		BudgetRange:    model.Budget50KTo200K,
		CompanySize:    model.CompanyLarge,
		IndustrySector: model.IndustryOilGas,
	}
	got = p.Predict(lead, model.ScoreBreakdown{}).EstimatedValue
	if want := 125_000.0 * 1.5 * 2.0; got != want {
		t.Fatalf("estimated value = %v, want %v", got, want)
	}
}

func TestPredictDeterministic(t *testing.T) {
	p := New(DefaultConfig())
	lead := strongLead()
	breakdown := model.ScoreBreakdown{Total: 65, Engagement: 55}
	a := p.Predict(lead, breakdown)
	b := p.Predict(lead, breakdown)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same input produced different predictions")
	}
}

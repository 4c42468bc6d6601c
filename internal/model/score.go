package model

// FactorDetail explains one contributing scoring rule: the raw points it
// added, the weight of its dimension, and a human-readable reason. Required
// for explainability and audit, not just the number.
type FactorDetail struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Reason string  `json:"reason"`
}

// ScoreBreakdown is the six-dimension weighted quality assessment of a lead.
// Immutable once produced; recomputed fresh per lead snapshot, never patched.
type ScoreBreakdown struct {
	Total      int     `json:"total"`
	Profile    float64 `json:"profile"`
	Behavior   float64 `json:"behavior"`
	Engagement float64 `json:"engagement"`
	Urgency    float64 `json:"urgency"`
	Company    float64 `json:"company"`
	Project    float64 `json:"project"`

	Details map[string]FactorDetail `json:"details"`
}

// PredictionFactors lists the tags that raised or lowered the estimate.
type PredictionFactors struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// ConversionPrediction is the heuristic estimate of the probability, timing,
// and value of a lead becoming a sale. Derived solely from LeadAttributes and
// a ScoreBreakdown; safe to recompute idempotently.
type ConversionPrediction struct {
	Probability          float64           `json:"probability"`
	Confidence           float64           `json:"confidence"`
	TimeToConversionDays int               `json:"timeToConversion"`
	EstimatedValue       float64           `json:"estimatedValue"`
	Factors              PredictionFactors `json:"factors"`
}

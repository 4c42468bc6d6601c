package repository

import (
	"context"
	"time"

	"leadintel_backend/internal/model"
)

// Qualification is one persisted scoring outcome. The full lead snapshot
// and breakdown are stored as JSONB so the audit trail survives model
// configuration changes.
type Qualification struct {
	LeadID     string
	Attributes model.LeadAttributes
	Breakdown  model.ScoreBreakdown
	Prediction model.ConversionPrediction
	SequenceID string
	Priority   string
	AssignedTo string
	CreatedAt  time.Time
}

// DispatchAttempt is one delivery attempt against a scheduled action.
type DispatchAttempt struct {
	ActionID  string
	LeadID    string
	Channel   string
	Success   bool
	Error     string
	CreatedAt time.Time
}

// QualificationWriter persists scoring outcomes.
type QualificationWriter interface {
	InsertQualification(ctx context.Context, q Qualification) error
	InsertDispatchAttempt(ctx context.Context, a DispatchAttempt) error
}

// QualificationReader reads the audit trail.
type QualificationReader interface {
	GetQualification(ctx context.Context, leadID string) (Qualification, error)
	ListQualifications(ctx context.Context, limit int) ([]Qualification, error)
	ListDispatchAttempts(ctx context.Context, leadID string) ([]DispatchAttempt, error)
}

// Repository combines all audit store operations.
type Repository interface {
	QualificationWriter
	QualificationReader
}

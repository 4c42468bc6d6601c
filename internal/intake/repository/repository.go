package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadintel_backend/platform/apperr"
)

const qualificationNotFoundMessage = "qualification not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit store repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// InsertQualification persists one scoring outcome. Resubmission of the
// same lead overwrites the previous record, mirroring schedule rebuilds.
func (r *Repo) InsertQualification(ctx context.Context, q Qualification) error {
	attrs, err := json.Marshal(q.Attributes)
	if err != nil {
		return fmt.Errorf("marshal lead attributes: %w", err)
	}
	breakdown, err := json.Marshal(q.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal score breakdown: %w", err)
	}
	prediction, err := json.Marshal(q.Prediction)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}

	query := `
		INSERT INTO lead_qualifications (lead_id, attributes, breakdown, prediction, total, probability, sequence_id, priority, assigned_to, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (lead_id) DO UPDATE SET
			attributes = EXCLUDED.attributes,
			breakdown = EXCLUDED.breakdown,
			prediction = EXCLUDED.prediction,
			total = EXCLUDED.total,
			probability = EXCLUDED.probability,
			sequence_id = EXCLUDED.sequence_id,
			priority = EXCLUDED.priority,
			assigned_to = EXCLUDED.assigned_to,
			created_at = EXCLUDED.created_at`

	_, err = r.pool.Exec(ctx, query,
		q.LeadID, attrs, breakdown, prediction,
		q.Breakdown.Total, q.Prediction.Probability,
		nullable(q.SequenceID), q.Priority, q.AssignedTo, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert qualification: %w", err)
	}
	return nil
}

// InsertDispatchAttempt records one delivery attempt for the audit trail.
func (r *Repo) InsertDispatchAttempt(ctx context.Context, a DispatchAttempt) error {
	query := `
		INSERT INTO dispatch_attempts (action_id, lead_id, channel, success, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		a.ActionID, a.LeadID, a.Channel, a.Success, nullable(a.Error), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dispatch attempt: %w", err)
	}
	return nil
}

// GetQualification retrieves the stored outcome for a lead.
func (r *Repo) GetQualification(ctx context.Context, leadID string) (Qualification, error) {
	query := `
		SELECT lead_id, attributes, breakdown, prediction, sequence_id, priority, assigned_to, created_at
		FROM lead_qualifications
		WHERE lead_id = $1`

	var (
		q          Qualification
		attrs      []byte
		breakdown  []byte
		prediction []byte
		sequenceID *string
	)
	err := r.pool.QueryRow(ctx, query, leadID).Scan(
		&q.LeadID, &attrs, &breakdown, &prediction, &sequenceID, &q.Priority, &q.AssignedTo, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Qualification{}, apperr.NotFound(qualificationNotFoundMessage)
		}
		return Qualification{}, fmt.Errorf("get qualification: %w", err)
	}

	if err := unmarshalRecord(attrs, breakdown, prediction, &q); err != nil {
		return Qualification{}, err
	}
	if sequenceID != nil {
		q.SequenceID = *sequenceID
	}
	return q, nil
}

// ListQualifications retrieves the most recent outcomes, newest first.
func (r *Repo) ListQualifications(ctx context.Context, limit int) ([]Qualification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT lead_id, attributes, breakdown, prediction, sequence_id, priority, assigned_to, created_at
		FROM lead_qualifications
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list qualifications: %w", err)
	}
	defer rows.Close()

	var out []Qualification
	for rows.Next() {
		var (
			q          Qualification
			attrs      []byte
			breakdown  []byte
			prediction []byte
			sequenceID *string
		)
		if err := rows.Scan(&q.LeadID, &attrs, &breakdown, &prediction, &sequenceID, &q.Priority, &q.AssignedTo, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan qualification: %w", err)
		}
		if err := unmarshalRecord(attrs, breakdown, prediction, &q); err != nil {
			return nil, err
		}
		if sequenceID != nil {
			q.SequenceID = *sequenceID
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// ListDispatchAttempts retrieves the delivery history for a lead, newest first.
func (r *Repo) ListDispatchAttempts(ctx context.Context, leadID string) ([]DispatchAttempt, error) {
	query := `
		SELECT action_id, lead_id, channel, success, COALESCE(error, ''), created_at
		FROM dispatch_attempts
		WHERE lead_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list dispatch attempts: %w", err)
	}
	defer rows.Close()

	var out []DispatchAttempt
	for rows.Next() {
		var a DispatchAttempt
		if err := rows.Scan(&a.ActionID, &a.LeadID, &a.Channel, &a.Success, &a.Error, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dispatch attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func unmarshalRecord(attrs, breakdown, prediction []byte, q *Qualification) error {
	if err := json.Unmarshal(attrs, &q.Attributes); err != nil {
		return fmt.Errorf("unmarshal lead attributes: %w", err)
	}
	if err := json.Unmarshal(breakdown, &q.Breakdown); err != nil {
		return fmt.Errorf("unmarshal score breakdown: %w", err)
	}
	if err := json.Unmarshal(prediction, &q.Prediction); err != nil {
		return fmt.Errorf("unmarshal prediction: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

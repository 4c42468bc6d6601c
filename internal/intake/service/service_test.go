package service

import (
	"context"
	"testing"
	"time"

	"leadintel_backend/internal/events"
	"leadintel_backend/internal/followup"
	"leadintel_backend/internal/intake/repository"
	"leadintel_backend/internal/intake/transport"
	"leadintel_backend/internal/prediction"
	"leadintel_backend/internal/scoring"
	"leadintel_backend/platform/apperr"
	"leadintel_backend/platform/logger"
)

type fakeRepo struct {
	qualifications map[string]repository.Qualification
	attempts       []repository.DispatchAttempt
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{qualifications: make(map[string]repository.Qualification)}
}

func (f *fakeRepo) InsertQualification(ctx context.Context, q repository.Qualification) error {
	f.qualifications[q.LeadID] = q
	return nil
}

func (f *fakeRepo) InsertDispatchAttempt(ctx context.Context, a repository.DispatchAttempt) error {
	f.attempts = append(f.attempts, a)
	return nil
}

func (f *fakeRepo) GetQualification(ctx context.Context, leadID string) (repository.Qualification, error) {
	q, ok := f.qualifications[leadID]
	if !ok {
		return repository.Qualification{}, apperr.NotFound("qualification not found")
	}
	return q, nil
}

func (f *fakeRepo) ListQualifications(ctx context.Context, limit int) ([]repository.Qualification, error) {
	var out []repository.Qualification
	for _, q := range f.qualifications {
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeRepo) ListDispatchAttempts(ctx context.Context, leadID string) ([]repository.DispatchAttempt, error) {
	var out []repository.DispatchAttempt
	// Newest first, matching the SQL ordering.
	for i := len(f.attempts) - 1; i >= 0; i-- {
		if f.attempts[i].LeadID == leadID {
			out = append(out, f.attempts[i])
		}
	}
	return out, nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func newTestService(repo repository.Repository) *Service {
	log := logger.New("test")
	return New(
		scoring.New(scoring.DefaultConfig()),
		prediction.New(prediction.DefaultConfig()),
		followup.NewScheduler(followup.DefaultConfig()),
		repo,
		events.NewInMemoryBus(log),
		log,
	)
}

func hotRequest() transport.SubmitLeadRequest {
	qty := 12
	return transport.SubmitLeadRequest{
		Name:                "Jane Doe",
		Email:               "jane@acme-industrial.com",
		Phone:               "+1 415 555 2671",
		Company:             "Acme Industrial",
		CompanySize:         "large",
		IndustrySector:      "oil_gas",
		BudgetRange:         "over_1m",
		DecisionAuthority:   "decision_maker",
		ProjectTimeline:     "immediate",
		Urgency:             "immediate",
		QuantityEstimate:    &qty,
		ProductCategory:     "hydraulic pumps",
		DeviceType:          "desktop",
		PageViewsCount:      9,
		DocumentsDownloaded: 3,
		EngagementTimeSecs:  1200,
		Referrer:            "https://b2b-supplier-directory.com",
		Message:             "We need a full replacement program for our offshore hydraulic pump inventory, including installation support and a maintenance contract.",
	}
}

func TestSubmitLeadRunsFullPipeline(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	result, err := svc.SubmitLead(context.Background(), hotRequest())
	if err != nil {
		t.Fatalf("SubmitLead: %v", err)
	}

	if result.LeadID == "" {
		t.Fatalf("expected a generated lead ID")
	}
	if result.Score.Total < 70 {
		t.Fatalf("hot lead scored %d, want >= 70", result.Score.Total)
	}
	if result.Schedule.SequenceID != followup.SequenceHighValue {
		t.Fatalf("expected %s, got %s", followup.SequenceHighValue, result.Schedule.SequenceID)
	}
	if result.Routing.Priority == "" {
		t.Fatalf("routing priority not derived")
	}
	if result.Routing.AssignedTo == "" {
		t.Fatalf("routing assignee not resolved")
	}

	stored, ok := repo.qualifications[result.LeadID]
	if !ok {
		t.Fatalf("qualification not persisted")
	}
	if stored.Breakdown.Total != result.Score.Total {
		t.Fatalf("persisted total %d differs from response %d", stored.Breakdown.Total, result.Score.Total)
	}
	// Phone normalization happens before scoring and persisting.
	if stored.Attributes.Phone != "+14155552671" {
		t.Fatalf("phone not normalized: %q", stored.Attributes.Phone)
	}
}

func TestSubmitLeadResubmissionRebuildsSchedule(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	req := hotRequest()
	req.LeadID = "lead-fixed"
	first, err := svc.SubmitLead(context.Background(), req)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	svc.CompleteAction(context.Background(), first.Schedule.Actions[0].ID, true, "email", "")

	second, err := svc.SubmitLead(context.Background(), req)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.LeadID != "lead-fixed" {
		t.Fatalf("lead ID changed on resubmission: %s", second.LeadID)
	}
	for _, a := range second.Schedule.Actions {
		if a.Status != followup.StatusPending {
			t.Fatalf("resubmission carried over action state: %s", a.Status)
		}
	}
}

func TestGetScheduleUnknownLead(t *testing.T) {
	svc := newTestService(newFakeRepo())
	if _, err := svc.GetSchedule("nope"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRenderUsesStoredSnapshot(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	result, err := svc.SubmitLead(context.Background(), hotRequest())
	if err != nil {
		t.Fatalf("SubmitLead: %v", err)
	}

	var emailAction followup.Action
	for _, a := range result.Schedule.Actions {
		if a.Type == followup.ActionEmail && a.TemplateID != "" {
			emailAction = a
			break
		}
	}
	if emailAction.ID == "" {
		t.Fatalf("no email action with a template in schedule")
	}

	message, lead, ok := svc.Render(emailAction)
	if !ok {
		t.Fatalf("expected a snapshot for the submitted lead")
	}
	if lead.Email != "jane@acme-industrial.com" {
		t.Fatalf("wrong snapshot: %s", lead.Email)
	}
	if message.Body == "" {
		t.Fatalf("empty rendered body")
	}
}

func TestRehydrateRestoresStateAndReplaysAttempts(t *testing.T) {
	repo := newFakeRepo()
	first := newTestService(repo)

	req := hotRequest()
	req.LeadID = "lead-rehydrate"
	result, err := first.SubmitLead(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitLead: %v", err)
	}
	firstActionID := result.Schedule.Actions[0].ID
	first.CompleteAction(context.Background(), firstActionID, true, "email", "")

	// A fresh service with the same repository simulates a restart.
	restarted := newTestService(repo)
	if err := restarted.Rehydrate(context.Background(), 100); err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}

	schedule, err := restarted.GetSchedule("lead-rehydrate")
	if err != nil {
		t.Fatalf("GetSchedule after rehydrate: %v", err)
	}
	if schedule.SequenceID != result.Schedule.SequenceID {
		t.Fatalf("sequence changed across restart: %s vs %s", schedule.SequenceID, result.Schedule.SequenceID)
	}
	for _, a := range schedule.Actions {
		if a.ID == firstActionID {
			if a.Status != followup.StatusCompleted {
				t.Fatalf("dispatched action not replayed: %s", a.Status)
			}
			continue
		}
		if a.Status != followup.StatusPending {
			t.Fatalf("action %s unexpectedly %s after rehydrate", a.ID, a.Status)
		}
	}

	// Action times are anchored at the original submission, not the restart.
	orig := result.Schedule.Actions[1].ScheduledAt
	var restored time.Time
	for _, a := range schedule.Actions {
		if a.ID == result.Schedule.Actions[1].ID {
			restored = a.ScheduledAt
		}
	}
	if delta := restored.Sub(orig); delta > time.Second || delta < -time.Second {
		t.Fatalf("action time drifted %v across rehydrate", delta)
	}
}

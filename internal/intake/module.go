// Package intake provides the lead intake bounded context module.
// It owns the qualification pipeline: scoring, prediction, routing,
// follow-up scheduling, and the persisted audit trail.
package intake

import (
	"leadintel_backend/internal/events"
	"leadintel_backend/internal/followup"
	apphttp "leadintel_backend/internal/http"
	"leadintel_backend/internal/intake/handler"
	"leadintel_backend/internal/intake/repository"
	"leadintel_backend/internal/intake/service"
	"leadintel_backend/internal/prediction"
	"leadintel_backend/internal/scoring"
	"leadintel_backend/platform/config"
	"leadintel_backend/platform/logger"
	"leadintel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the intake bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the intake module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger, bus events.Bus, cfg config.EngineConfig) *Module {
	schedulerCfg := followup.DefaultConfig()
	if assignee := cfg.GetDefaultAssignee(); assignee != "" {
		schedulerCfg.DefaultAssignee = assignee
	}

	repo := repository.New(pool)
	svc := service.New(
		scoring.New(scoring.DefaultConfig()),
		prediction.New(prediction.DefaultConfig()),
		followup.NewScheduler(schedulerCfg),
		repo,
		bus,
		log,
	)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intake"
}

// Service returns the service layer for external use (the dispatch worker).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts intake routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leads := ctx.V1.Group("/leads")
	leads.POST("", ctx.IntakeRateLimiter.Middleware(), m.handler.SubmitLead)
	leads.GET("", m.handler.ListQualifications)
	leads.GET("/:id", m.handler.GetQualification)
	leads.GET("/:id/schedule", m.handler.GetSchedule)
	leads.POST("/:id/response", m.handler.MarkResponse)
	leads.PATCH("/:id/conversion", m.handler.UpdateConversion)

	actions := ctx.V1.Group("/actions")
	actions.GET("/due", m.handler.DueActions)
	actions.GET("/assignee/:assignee", m.handler.AssigneeQueue)
	actions.POST("/:id/complete", m.handler.CompleteAction)

	ctx.V1.GET("/stats", m.handler.Stats)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

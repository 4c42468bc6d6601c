package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"leadintel_backend/internal/followup"
	"leadintel_backend/internal/intake/service"
	"leadintel_backend/internal/intake/transport"
	"leadintel_backend/platform/httpkit"
	"leadintel_backend/platform/validator"
)

// Handler handles HTTP requests for lead intake and follow-up management.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgLeadIDRequired   = "lead ID is required"
	msgActionIDRequired = "action ID is required"
)

// New creates a new intake handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SubmitLead processes a public lead submission.
// POST /api/v1/leads
func (h *Handler) SubmitLead(c *gin.Context) {
	var req transport.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SubmitLead(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetSchedule retrieves a lead's follow-up schedule.
// GET /api/v1/leads/:id/schedule
func (h *Handler) GetSchedule(c *gin.Context) {
	leadID := c.Param("id")
	if leadID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgLeadIDRequired, nil)
		return
	}

	schedule, err := h.svc.GetSchedule(leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ScheduleResponse{Schedule: schedule})
}

// GetQualification retrieves the persisted audit record for a lead.
// GET /api/v1/leads/:id
func (h *Handler) GetQualification(c *gin.Context) {
	leadID := c.Param("id")
	if leadID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgLeadIDRequired, nil)
		return
	}

	record, err := h.svc.GetQualification(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, record)
}

// ListQualifications retrieves recent audit records.
// GET /api/v1/leads
func (h *Handler) ListQualifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.svc.ListQualifications(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": records, "total": len(records)})
}

// DueActions lists all pending actions due now.
// GET /api/v1/actions/due
func (h *Handler) DueActions(c *gin.Context) {
	actions := h.svc.DueActions(time.Now())
	httpkit.OK(c, transport.ActionListResponse{Items: actions, Total: len(actions)})
}

// AssigneeQueue lists the pending actions for one assignee.
// GET /api/v1/actions/assignee/:assignee
func (h *Handler) AssigneeQueue(c *gin.Context) {
	assignee := c.Param("assignee")
	if assignee == "" {
		httpkit.Error(c, http.StatusBadRequest, "assignee is required", nil)
		return
	}
	actions := h.svc.ActionsForAssignee(assignee)
	httpkit.OK(c, transport.ActionListResponse{Items: actions, Total: len(actions)})
}

// CompleteAction reports the outcome of a dispatched or manual action.
// POST /api/v1/actions/:id/complete
func (h *Handler) CompleteAction(c *gin.Context) {
	actionID := c.Param("id")
	if actionID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgActionIDRequired, nil)
		return
	}

	var req transport.CompleteActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	h.svc.CompleteAction(c.Request.Context(), actionID, req.Success, "manual", "")
	httpkit.OK(c, gin.H{"status": "ok"})
}

// MarkResponse registers an inbound reply from a lead.
// POST /api/v1/leads/:id/response
func (h *Handler) MarkResponse(c *gin.Context) {
	leadID := c.Param("id")
	if leadID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgLeadIDRequired, nil)
		return
	}

	var req transport.ResponseReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	h.svc.MarkResponseReceived(c.Request.Context(), leadID, req.Channel)
	httpkit.OK(c, gin.H{"status": "ok"})
}

// UpdateConversion moves a lead through the conversion funnel.
// PATCH /api/v1/leads/:id/conversion
func (h *Handler) UpdateConversion(c *gin.Context) {
	leadID := c.Param("id")
	if leadID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgLeadIDRequired, nil)
		return
	}

	var req transport.ConversionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	h.svc.UpdateConversionStatus(c.Request.Context(), leadID, followup.ConversionStatus(req.Status))
	httpkit.OK(c, gin.H{"status": "ok"})
}

// Stats exposes scheduler aggregates.
// GET /api/v1/stats
func (h *Handler) Stats(c *gin.Context) {
	httpkit.OK(c, h.svc.Stats())
}

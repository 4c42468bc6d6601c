// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"leadintel_backend/internal/model"
	"leadintel_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Qualification Domain Events
// =============================================================================

// LeadQualified is published after a submitted lead has been scored,
// predicted, and scheduled.
type LeadQualified struct {
	BaseEvent
	LeadID      string               `json:"leadId"`
	Total       int                  `json:"total"`
	Probability float64              `json:"probability"`
	SequenceID  string               `json:"sequenceId,omitempty"`
	Priority    model.Priority       `json:"priority"`
	AssignedTo  string               `json:"assignedTo"`
	Attributes  model.LeadAttributes `json:"attributes"`
}

func (e LeadQualified) EventName() string { return "leadintel.lead.qualified" }

// =============================================================================
// Follow-up Domain Events
// =============================================================================

// ActionDue is published when the dispatcher picks up a due action.
type ActionDue struct {
	BaseEvent
	ActionID   string `json:"actionId"`
	LeadID     string `json:"leadId"`
	ActionType string `json:"actionType"`
	AssignedTo string `json:"assignedTo"`
}

func (e ActionDue) EventName() string { return "leadintel.action.due" }

// ActionDispatched is published after a delivery attempt, successful or not.
type ActionDispatched struct {
	BaseEvent
	ActionID   string    `json:"actionId"`
	LeadID     string    `json:"leadId"`
	ActionType string    `json:"actionType"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	AttemptAt  time.Time `json:"attemptAt"`
}

func (e ActionDispatched) EventName() string { return "leadintel.action.dispatched" }

// LeadResponded is published when an inbound reply is registered for a lead.
type LeadResponded struct {
	BaseEvent
	LeadID  string `json:"leadId"`
	Channel string `json:"channel,omitempty"`
}

func (e LeadResponded) EventName() string { return "leadintel.lead.responded" }

// ConversionStatusChanged is published when a schedule moves through the
// funnel, including into the terminal converted and lost states.
type ConversionStatusChanged struct {
	BaseEvent
	LeadID string `json:"leadId"`
	Status string `json:"status"`
}

func (e ConversionStatusChanged) EventName() string { return "leadintel.lead.conversion_changed" }

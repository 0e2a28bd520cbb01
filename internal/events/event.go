// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"leadcrm_backend/platform/events"

	"github.com/google/uuid"
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
// Lead Lifecycle Events
// =============================================================================

// LeadCreated is published when a new lead is captured.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Source string    `json:"source"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadStatusChanged is published when a lead moves to a different funnel status.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// LeadScoreUpdated is published when a lead's temperature score is replaced.
type LeadScoreUpdated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
}

func (e LeadScoreUpdated) EventName() string { return "leads.score.updated" }

// LeadDeleted is published when an operator removes a lead. Notes cascade in
// the store; subscribers only need the id for cleanup.
type LeadDeleted struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.deleted" }

// FollowUpScheduled is published when a note with a follow-up date is created,
// so the reminder scheduler can enqueue a task for the due date.
type FollowUpScheduled struct {
	BaseEvent
	NoteID  uuid.UUID `json:"noteId"`
	LeadID  uuid.UUID `json:"leadId"`
	DueDate time.Time `json:"dueDate"`
}

func (e FollowUpScheduled) EventName() string { return "leads.followup.scheduled" }

// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leaddesk_backend/platform/events"
	"leaddesk_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadsUploaded is published when a batch of leads has been created.
type LeadsUploaded struct {
	BaseEvent
	Count       int       `json:"count"`
	TargetUsers int       `json:"targetUsers"`
	UploadedBy  uuid.UUID `json:"uploadedBy"`
}

func (e LeadsUploaded) EventName() string { return "leads.uploaded" }

// LeadsAssigned is published after a claim batch moves leads out of the pool.
type LeadsAssigned struct {
	BaseEvent
	UserID   uuid.UUID `json:"userId"`
	Assigned int       `json:"assigned"`
	Source   string    `json:"source"` // "manual", "upload" or "auto"
}

func (e LeadsAssigned) EventName() string { return "leads.assigned" }

// LeadStatusChanged is published when a lead's status or sub-status changes.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	ActorID   uuid.UUID `json:"actorId"`
	Status    string    `json:"status"`
	SubStatus *string   `json:"subStatus,omitempty"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status_changed" }

// =============================================================================
// Auto-Assignment Domain Events
// =============================================================================

// AutoAssignCompleted is published after an auto-assignment run finishes.
type AutoAssignCompleted struct {
	BaseEvent
	TotalAssigned int `json:"totalAssigned"`
	UsersServed   int `json:"usersServed"`
}

func (e AutoAssignCompleted) EventName() string { return "autoassign.completed" }

// Package transport defines the request/response DTOs of the leads module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type UploadLeadsRequest struct {
	Leads   []string    `json:"leads" validate:"required,min=1,dive,required"`
	UserIDs []uuid.UUID `json:"userIds"`
}

type UploadLeadsResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type ManualAssignment struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Count  int       `json:"count" validate:"required"`
}

type AssignLeadsRequest struct {
	Assignments []ManualAssignment `json:"assignments" validate:"required,min=1,dive"`
}

type AssignLeadsResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors"`
}

type PoolBalanceResponse struct {
	Count int `json:"count"`
}

// UpdateLeadStatusRequest carries a partial lifecycle update; omitted
// fields are left untouched.
type UpdateLeadStatusRequest struct {
	Status    *string `json:"status"`
	SubStatus *string `json:"subStatus"`
	Notes     *string `json:"notes"`
}

type SetActiveClientRequest struct {
	IsActiveClient *bool `json:"isActiveClient" validate:"required"`
}

type LeadResponse struct {
	ID               uuid.UUID  `json:"id"`
	Identifier       string     `json:"leadIdentifier"`
	AssignedTo       *uuid.UUID `json:"assignedTo,omitempty"`
	AssignedUsername *string    `json:"assignedUsername,omitempty"`
	Status           string     `json:"status"`
	SubStatus        *string    `json:"subStatus,omitempty"`
	Notes            string     `json:"notes"`
	IsActiveClient   bool       `json:"isActiveClient"`
	AssignedDate     *string    `json:"assignedDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
}

type SearchLeadsResponse struct {
	Results []LeadResponse `json:"results"`
}

type CreateClientNoteRequest struct {
	Note string `json:"note" validate:"required,max=2000"`
}

type ClientNoteResponse struct {
	ID             uuid.UUID `json:"id"`
	LeadID         uuid.UUID `json:"leadId"`
	Note           string    `json:"note"`
	CreatedBy      uuid.UUID `json:"createdBy"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ClientNotesResponse struct {
	Items []ClientNoteResponse `json:"items"`
}

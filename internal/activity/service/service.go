// Package service records user activity: time-spent heartbeats sent by the
// client while a user works, and audit entries for lead status changes.
package service

import (
	"context"

	"leaddesk_backend/internal/activity/repository"
	"leaddesk_backend/internal/events"
	"leaddesk_backend/platform/apperr"

	"github.com/google/uuid"
)

// Action types written to the activity log. The leaderboard treats
// time_spent rows as one minute and one point each; lead_update rows are
// audit-only and carry no points.
const (
	ActionTimeSpent  = "time_spent"
	ActionLeadUpdate = "lead_update"
)

// Repository defines the data access interface needed by the activity service.
type Repository interface {
	Insert(ctx context.Context, params repository.InsertLogParams) error
}

// Service handles activity recording.
type Service struct {
	repo Repository
}

// New creates a new activity service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordHeartbeat logs one minute of presence for the user.
func (s *Service) RecordHeartbeat(ctx context.Context, userID uuid.UUID) error {
	err := s.repo.Insert(ctx, repository.InsertLogParams{
		UserID:     userID,
		ActionType: ActionTimeSpent,
		Points:     1,
		Details:    map[string]interface{}{"unit": "minute"},
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to record heartbeat", err)
	}
	return nil
}

// HandleStatusChanged writes an audit entry for a lead status change.
func (s *Service) HandleStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadStatusChanged)
	if !ok {
		return nil
	}

	details := map[string]interface{}{
		"leadId": e.LeadID.String(),
		"status": e.Status,
	}
	if e.SubStatus != nil {
		details["subStatus"] = *e.SubStatus
	}

	return s.repo.Insert(ctx, repository.InsertLogParams{
		UserID:     e.ActorID,
		ActionType: ActionLeadUpdate,
		Points:     0,
		Details:    details,
	})
}

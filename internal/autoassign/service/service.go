// Package service implements the scheduled auto-assignment runner and the
// admin configuration surface behind it.
package service

import (
	"context"
	"fmt"
	"time"

	"leaddesk_backend/internal/autoassign/repository"
	"leaddesk_backend/internal/autoassign/transport"
	"leaddesk_backend/internal/events"
	"leaddesk_backend/platform/apperr"
	"leaddesk_backend/platform/logger"

	"github.com/google/uuid"
)

// SettingsRepository defines the settings access needed by the service.
type SettingsRepository interface {
	ListEnabled(ctx context.Context) ([]repository.Setting, error)
	ListAll(ctx context.Context) ([]repository.Setting, error)
	Upsert(ctx context.Context, userID uuid.UUID, dailyLimit int, enabled bool) error
}

// LeadClaimer claims unassigned leads for a user. Implemented by the leads
// repository; each claim is atomic so concurrent runs never double-assign.
type LeadClaimer interface {
	ClaimPool(ctx context.Context, userID uuid.UUID, limit int, day time.Time) ([]uuid.UUID, error)
}

// Service runs auto-assignment and manages its per-user settings.
type Service struct {
	settings SettingsRepository
	claimer  LeadClaimer
	bus      events.Bus
	log      *logger.Logger
	now      func() time.Time
}

func New(settings SettingsRepository, claimer LeadClaimer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{settings: settings, claimer: claimer, bus: bus, log: log, now: time.Now}
}

// Run executes one auto-assignment pass: every enabled, active user with a
// positive daily limit receives up to that many leads from the pool. One
// user's failure is reported in their result row and does not stop the run.
// Deactivated accounts are skipped without a result row.
func (s *Service) Run(ctx context.Context, triggeredBy string) (transport.RunResponse, error) {
	settings, err := s.settings.ListEnabled(ctx)
	if err != nil {
		return transport.RunResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load auto-assign settings", err)
	}

	today := s.today()
	resp := transport.RunResponse{Success: true, Results: make([]transport.RunUserResult, 0, len(settings))}
	served := 0

	for _, setting := range settings {
		if !setting.UserIsActive {
			continue
		}

		result := transport.RunUserResult{UserID: setting.UserID, Username: setting.Username}

		claimed, err := s.claimer.ClaimPool(ctx, setting.UserID, setting.DailyLimit, today)
		switch {
		case err != nil:
			result.Status = fmt.Sprintf("failed to assign leads: %v", err)
			s.log.Error("auto-assign claim failed", "userId", setting.UserID, "error", err)
		case len(claimed) == 0:
			result.Status = "No leads available"
		default:
			result.Assigned = len(claimed)
			result.Status = fmt.Sprintf("Assigned %d leads", len(claimed))
			resp.TotalAssigned += len(claimed)
			served++
			if s.bus != nil {
				s.bus.Publish(ctx, events.LeadsAssigned{
					BaseEvent: events.NewBaseEvent(),
					UserID:    setting.UserID,
					Assigned:  len(claimed),
					Source:    "auto",
				})
			}
		}

		resp.Results = append(resp.Results, result)
	}

	s.log.Info("auto-assign run completed",
		"triggeredBy", triggeredBy,
		"totalAssigned", resp.TotalAssigned,
		"usersServed", served,
	)
	if s.bus != nil {
		s.bus.Publish(ctx, events.AutoAssignCompleted{
			BaseEvent:     events.NewBaseEvent(),
			TotalAssigned: resp.TotalAssigned,
			UsersServed:   served,
		})
	}

	return resp, nil
}

// Save creates or replaces the configuration of every listed user.
func (s *Service) Save(ctx context.Context, req transport.SaveSettingsRequest) error {
	for _, setting := range req.Settings {
		if err := s.settings.Upsert(ctx, setting.UserID, setting.DailyLimit, setting.IsEnabled); err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to save auto-assign settings", err)
		}
	}
	return nil
}

// List returns every non-admin user's configuration, defaults included.
func (s *Service) List(ctx context.Context) (transport.SettingsResponse, error) {
	settings, err := s.settings.ListAll(ctx)
	if err != nil {
		return transport.SettingsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list auto-assign settings", err)
	}

	items := make([]transport.SettingResponse, len(settings))
	for i, setting := range settings {
		items[i] = transport.SettingResponse{
			UserID:       setting.UserID,
			Username:     setting.Username,
			DailyLimit:   setting.DailyLimit,
			IsEnabled:    setting.IsEnabled,
			UserIsActive: setting.UserIsActive,
			UpdatedAt:    setting.UpdatedAt,
		}
	}
	return transport.SettingsResponse{Items: items}, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

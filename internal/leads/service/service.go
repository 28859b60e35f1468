// Package service implements lead distribution and lifecycle logic: bulk
// upload with round-robin targets, best-effort manual assignment from the
// unassigned pool, and the status/sub-status pipeline.
package service

import (
	"context"
	"fmt"
	"time"

	"leaddesk_backend/internal/events"
	"leaddesk_backend/internal/leads/repository"
	"leaddesk_backend/internal/leads/transport"
	"leaddesk_backend/platform/apperr"

	"github.com/google/uuid"
)

// ValidStatuses defines the primary lifecycle states.
var ValidStatuses = map[string]bool{
	"pending":  true,
	"done":     true,
	"rejected": true,
}

// ValidSubStatuses defines the post-sale tracking stages. The engine
// accepts any of them at any time; ordering is a client presentation
// concern.
var ValidSubStatuses = map[string]bool{
	"Replied": true,
	"Seen":    true,
	"Booked":  true,
	"Closed":  true,
}

const searchLimit = 20

// Actor identifies the caller of a lead mutation.
type Actor struct {
	ID    uuid.UUID
	Admin bool
}

// Repository defines the data access interface needed by the leads service.
// This is a consumer-driven interface - only what the service needs.
type Repository interface {
	CreateLeads(ctx context.Context, params []repository.CreateLeadParams) error
	ClaimPool(ctx context.Context, userID uuid.UUID, limit int, day time.Time) ([]uuid.UUID, error)
	CountPool(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	UpdateLead(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error)
	SetActiveClient(ctx context.Context, id uuid.UUID, active bool) (repository.Lead, error)
	List(ctx context.Context, params repository.ListLeadsParams) ([]repository.Lead, error)
	SearchByIdentifier(ctx context.Context, query string, limit int) ([]repository.Lead, error)
	ListTracked(ctx context.Context) ([]repository.Lead, error)
}

// Service handles lead distribution and lifecycle operations.
type Service struct {
	repo Repository
	bus  events.Bus
	now  func() time.Time
}

// New creates a new leads service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus, now: time.Now}
}

// Upload creates one lead per identifier in a single all-or-nothing batch.
// With no target users every lead lands in the unassigned pool; otherwise
// leads are distributed round-robin, the i-th lead going to targets[i mod M],
// with today's assignment date.
func (s *Service) Upload(ctx context.Context, actorID uuid.UUID, identifiers []string, targets []uuid.UUID) (int, error) {
	if len(identifiers) == 0 {
		return 0, apperr.Validation("no leads provided")
	}

	today := s.today()
	params := make([]repository.CreateLeadParams, len(identifiers))
	for i, identifier := range identifiers {
		p := repository.CreateLeadParams{Identifier: identifier}
		if len(targets) > 0 {
			target := targets[i%len(targets)]
			p.AssignedTo = &target
			p.AssignedDate = &today
		}
		params[i] = p
	}

	if err := s.repo.CreateLeads(ctx, params); err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to create leads", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadsUploaded{
			BaseEvent:   events.NewBaseEvent(),
			Count:       len(identifiers),
			TargetUsers: len(targets),
			UploadedBy:  actorID,
		})
	}

	return len(identifiers), nil
}

// ManualAssign claims pool leads for each entry in input order. Claims are
// best-effort: when the pool runs dry the remaining entries get nothing and
// no error is raised. One user's failure is recorded and does not block the
// others; completed claims stand.
func (s *Service) ManualAssign(ctx context.Context, assignments []transport.ManualAssignment) (int, []string) {
	total := 0
	errs := make([]string, 0)
	today := s.today()

	for _, assignment := range assignments {
		if assignment.Count <= 0 {
			continue
		}

		claimed, err := s.repo.ClaimPool(ctx, assignment.UserID, assignment.Count, today)
		if err != nil {
			errs = append(errs, fmt.Sprintf("failed to assign leads to user %s", assignment.UserID))
			continue
		}
		if len(claimed) == 0 {
			// Pool exhausted; later entries cannot be served either.
			break
		}

		total += len(claimed)
		if s.bus != nil {
			s.bus.Publish(ctx, events.LeadsAssigned{
				BaseEvent: events.NewBaseEvent(),
				UserID:    assignment.UserID,
				Assigned:  len(claimed),
				Source:    "manual",
			})
		}
	}

	return total, errs
}

// PoolBalance returns the number of unassigned leads.
func (s *Service) PoolBalance(ctx context.Context) (int, error) {
	count, err := s.repo.CountPool(ctx)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to count pool", err)
	}
	return count, nil
}

// UpdateStatus applies a partial lifecycle update. Non-admin actors may
// only mutate leads they own. Status moves freely between its three values;
// sub-status accepts any of its four stages at any time.
func (s *Service) UpdateStatus(ctx context.Context, leadID uuid.UUID, actor Actor, req transport.UpdateLeadStatusRequest) (transport.LeadResponse, error) {
	if req.Status == nil && req.SubStatus == nil && req.Notes == nil {
		return transport.LeadResponse{}, apperr.Validation("no fields to update")
	}
	if req.Status != nil && !ValidStatuses[*req.Status] {
		return transport.LeadResponse{}, apperr.Validation("invalid status")
	}
	if req.SubStatus != nil && !ValidSubStatuses[*req.SubStatus] {
		return transport.LeadResponse{}, apperr.Validation("invalid sub status")
	}

	lead, err := s.authorize(ctx, leadID, actor)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	updated, err := s.repo.UpdateLead(ctx, lead.ID, repository.UpdateLeadParams{
		Status:    req.Status,
		SubStatus: req.SubStatus,
		Notes:     req.Notes,
	})
	if err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}

	if s.bus != nil && (req.Status != nil || req.SubStatus != nil) {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    updated.ID,
			ActorID:   actor.ID,
			Status:    updated.Status,
			SubStatus: updated.SubStatus,
		})
	}

	return toLeadResponse(updated), nil
}

// SetActiveClient toggles the client-list visibility flag.
func (s *Service) SetActiveClient(ctx context.Context, leadID uuid.UUID, actor Actor, active bool) (transport.LeadResponse, error) {
	lead, err := s.authorize(ctx, leadID, actor)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	updated, err := s.repo.SetActiveClient(ctx, lead.ID, active)
	if err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}

	return toLeadResponse(updated), nil
}

// List returns the actor's leads for the given day (today when unset), or
// every day when all is set. Admins see all users' leads.
func (s *Service) List(ctx context.Context, actor Actor, date *time.Time, all bool) (transport.LeadListResponse, error) {
	params := repository.ListLeadsParams{}
	if !all {
		day := s.today()
		if date != nil {
			day = *date
		}
		params.Date = &day
	}
	if !actor.Admin {
		actorID := actor.ID
		params.AssignedTo = &actorID
	}

	leads, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}

	return transport.LeadListResponse{Items: toLeadResponses(leads)}, nil
}

// Search finds leads by identifier substring (admin surface).
func (s *Service) Search(ctx context.Context, query string) (transport.SearchLeadsResponse, error) {
	if query == "" {
		return transport.SearchLeadsResponse{Results: []transport.LeadResponse{}}, nil
	}

	leads, err := s.repo.SearchByIdentifier(ctx, query, searchLimit)
	if err != nil {
		return transport.SearchLeadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to search leads", err)
	}

	return transport.SearchLeadsResponse{Results: toLeadResponses(leads)}, nil
}

// Tracked returns every lead with a sub-status, for the admin tracking board.
func (s *Service) Tracked(ctx context.Context) (transport.LeadListResponse, error) {
	leads, err := s.repo.ListTracked(ctx)
	if err != nil {
		return transport.LeadListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list tracked leads", err)
	}

	return transport.LeadListResponse{Items: toLeadResponses(leads)}, nil
}

func (s *Service) authorize(ctx context.Context, leadID uuid.UUID, actor Actor) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return repository.Lead{}, apperr.NotFound("lead not found")
		}
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}

	if !actor.Admin && (lead.AssignedTo == nil || *lead.AssignedTo != actor.ID) {
		return repository.Lead{}, apperr.Unauthorized("lead is not assigned to you")
	}

	return lead, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:               lead.ID,
		Identifier:       lead.Identifier,
		AssignedTo:       lead.AssignedTo,
		AssignedUsername: lead.AssignedUsername,
		Status:           lead.Status,
		SubStatus:        lead.SubStatus,
		Notes:            lead.Notes,
		IsActiveClient:   lead.IsActiveClient,
		CreatedAt:        lead.CreatedAt,
	}
	if lead.AssignedDate != nil {
		formatted := lead.AssignedDate.Format("2006-01-02")
		resp.AssignedDate = &formatted
	}
	return resp
}

func toLeadResponses(leads []repository.Lead) []transport.LeadResponse {
	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = toLeadResponse(lead)
	}
	return items
}

// Package notes manages the append-only client note trail attached to leads.
package notes

import (
	"context"
	"strings"

	"leaddesk_backend/internal/leads/repository"
	"leaddesk_backend/internal/leads/service"
	"leaddesk_backend/internal/leads/transport"
	"leaddesk_backend/platform/apperr"

	"github.com/google/uuid"
)

// Repository defines the data access interface needed by the notes service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	CreateClientNote(ctx context.Context, params repository.CreateClientNoteParams) (repository.ClientNote, error)
	ListClientNotes(ctx context.Context, leadID uuid.UUID) ([]repository.ClientNote, error)
}

// Service handles client note operations.
type Service struct {
	repo Repository
}

// New creates a new notes service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create appends a note to the lead's trail. The author is always the actor.
func (s *Service) Create(ctx context.Context, leadID uuid.UUID, actor service.Actor, body string) (transport.ClientNoteResponse, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return transport.ClientNoteResponse{}, apperr.Validation("note must not be empty")
	}

	if err := s.authorize(ctx, leadID, actor); err != nil {
		return transport.ClientNoteResponse{}, err
	}

	note, err := s.repo.CreateClientNote(ctx, repository.CreateClientNoteParams{
		LeadID:    leadID,
		Note:      body,
		CreatedBy: actor.ID,
	})
	if err != nil {
		return transport.ClientNoteResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create note", err)
	}

	return toResponse(note), nil
}

// List returns the lead's notes, newest first.
func (s *Service) List(ctx context.Context, leadID uuid.UUID, actor service.Actor) (transport.ClientNotesResponse, error) {
	if err := s.authorize(ctx, leadID, actor); err != nil {
		return transport.ClientNotesResponse{}, err
	}

	notes, err := s.repo.ListClientNotes(ctx, leadID)
	if err != nil {
		return transport.ClientNotesResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list notes", err)
	}

	items := make([]transport.ClientNoteResponse, len(notes))
	for i, note := range notes {
		items[i] = toResponse(note)
	}
	return transport.ClientNotesResponse{Items: items}, nil
}

func (s *Service) authorize(ctx context.Context, leadID uuid.UUID, actor service.Actor) error {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("lead not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}

	if !actor.Admin && (lead.AssignedTo == nil || *lead.AssignedTo != actor.ID) {
		return apperr.Unauthorized("lead is not assigned to you")
	}

	return nil
}

func toResponse(note repository.ClientNote) transport.ClientNoteResponse {
	return transport.ClientNoteResponse{
		ID:             note.ID,
		LeadID:         note.LeadID,
		Note:           note.Note,
		CreatedBy:      note.CreatedBy,
		AuthorUsername: note.AuthorUsername,
		CreatedAt:      note.CreatedAt,
	}
}

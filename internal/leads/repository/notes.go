package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ClientNote is one entry of a lead's append-only note trail, independent
// of the single free-text notes field on the lead itself.
type ClientNote struct {
	ID             uuid.UUID
	LeadID         uuid.UUID
	Note           string
	CreatedBy      uuid.UUID
	AuthorUsername string
	CreatedAt      time.Time
}

// CreateClientNoteParams carries the fields of a new client note.
type CreateClientNoteParams struct {
	LeadID    uuid.UUID
	Note      string
	CreatedBy uuid.UUID
}

func (r *Repository) CreateClientNote(ctx context.Context, params CreateClientNoteParams) (ClientNote, error) {
	var note ClientNote
	err := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO client_notes (lead_id, note, created_by)
			VALUES ($1, $2, $3)
			RETURNING id, lead_id, note, created_by, created_at
		)
		SELECT inserted.id, inserted.lead_id, inserted.note, inserted.created_by, u.username, inserted.created_at
		FROM inserted
		JOIN users u ON u.id = inserted.created_by
	`, params.LeadID, params.Note, params.CreatedBy).Scan(
		&note.ID,
		&note.LeadID,
		&note.Note,
		&note.CreatedBy,
		&note.AuthorUsername,
		&note.CreatedAt,
	)
	return note, err
}

func (r *Repository) ListClientNotes(ctx context.Context, leadID uuid.UUID) ([]ClientNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cn.id, cn.lead_id, cn.note, cn.created_by, u.username, cn.created_at
		FROM client_notes cn
		JOIN users u ON u.id = cn.created_by
		WHERE cn.lead_id = $1
		ORDER BY cn.created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]ClientNote, 0)
	for rows.Next() {
		var note ClientNote
		if err := rows.Scan(
			&note.ID,
			&note.LeadID,
			&note.Note,
			&note.CreatedBy,
			&note.AuthorUsername,
			&note.CreatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// Package repository provides data access for the leads bounded context.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested lead does not exist.
var ErrNotFound = errors.New("lead not found")

// Lead is a lead row. AssignedTo is nil while the lead sits in the
// unassigned pool; AssignedUsername is populated on reads that join users.
type Lead struct {
	ID               uuid.UUID
	Identifier       string
	AssignedTo       *uuid.UUID
	AssignedUsername *string
	Status           string
	SubStatus        *string
	Notes            string
	IsActiveClient   bool
	AssignedDate     *time.Time
	CreatedAt        time.Time
}

// CreateLeadParams describes one lead row of a bulk upload.
type CreateLeadParams struct {
	Identifier   string
	AssignedTo   *uuid.UUID
	AssignedDate *time.Time
}

// UpdateLeadParams carries the optional lifecycle fields of a status update.
// Nil fields are left unchanged.
type UpdateLeadParams struct {
	Status    *string
	SubStatus *string
	Notes     *string
}

// ListLeadsParams filters lead listings. A nil AssignedTo returns all
// owners; a nil Date returns every assignment day.
type ListLeadsParams struct {
	AssignedTo *uuid.UUID
	Date       *time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `
	l.id, l.lead_identifier, l.assigned_to, u.username, l.status, l.sub_status,
	l.notes, l.is_active_client, l.assigned_date, l.created_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID,
		&lead.Identifier,
		&lead.AssignedTo,
		&lead.AssignedUsername,
		&lead.Status,
		&lead.SubStatus,
		&lead.Notes,
		&lead.IsActiveClient,
		&lead.AssignedDate,
		&lead.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// CreateLeads inserts a batch of leads in a single transaction, so a failed
// upload never leaves a partial subset behind.
func (r *Repository) CreateLeads(ctx context.Context, params []CreateLeadParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, p := range params {
		batch.Queue(`
			INSERT INTO leads (lead_identifier, assigned_to, status, assigned_date)
			VALUES ($1, $2, 'pending', $3)
		`, p.Identifier, p.AssignedTo, p.AssignedDate)
	}

	results := tx.SendBatch(ctx, batch)
	for range params {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ClaimPool atomically claims up to limit unassigned leads for a user and
// stamps the assignment date. The SKIP LOCKED conditional update is the
// single claim primitive shared by manual and automatic assignment; two
// concurrent claimers can never receive the same lead.
func (r *Repository) ClaimPool(ctx context.Context, userID uuid.UUID, limit int, day time.Time) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		WITH claimed AS (
			SELECT id FROM leads
			WHERE assigned_to IS NULL
			ORDER BY created_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		UPDATE leads
		SET assigned_to = $1, assigned_date = $3
		FROM claimed
		WHERE leads.id = claimed.id AND leads.assigned_to IS NULL
		RETURNING leads.id
	`, userID, limit, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CountPool returns the pool balance: leads with no owner.
func (r *Repository) CountPool(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM leads WHERE assigned_to IS NULL`).Scan(&count)
	return count, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+leadColumns+`
		FROM leads l
		LEFT JOIN users u ON u.id = l.assigned_to
		WHERE l.id = $1
	`, id)
	return scanLead(row)
}

// UpdateLead applies a partial lifecycle update. Nil params keep the
// current column value.
func (r *Repository) UpdateLead(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE leads
			SET status     = COALESCE($2, status),
			    sub_status = COALESCE($3, sub_status),
			    notes      = COALESCE($4, notes)
			WHERE id = $1
			RETURNING *
		)
		SELECT`+leadColumns+`
		FROM updated l
		LEFT JOIN users u ON u.id = l.assigned_to
	`, id, params.Status, params.SubStatus, params.Notes)
	return scanLead(row)
}

func (r *Repository) SetActiveClient(ctx context.Context, id uuid.UUID, active bool) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE leads
			SET is_active_client = $2
			WHERE id = $1
			RETURNING *
		)
		SELECT`+leadColumns+`
		FROM updated l
		LEFT JOIN users u ON u.id = l.assigned_to
	`, id, active)
	return scanLead(row)
}

// List returns leads matching the filter, newest first.
func (r *Repository) List(ctx context.Context, params ListLeadsParams) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+leadColumns+`
		FROM leads l
		LEFT JOIN users u ON u.id = l.assigned_to
		WHERE ($1::uuid IS NULL OR l.assigned_to = $1)
		  AND ($2::date IS NULL OR l.assigned_date = $2)
		ORDER BY l.created_at DESC
	`, params.AssignedTo, params.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeads(rows)
}

// SearchByIdentifier finds leads whose identifier contains the query,
// case-insensitively.
func (r *Repository) SearchByIdentifier(ctx context.Context, query string, limit int) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+leadColumns+`
		FROM leads l
		LEFT JOIN users u ON u.id = l.assigned_to
		WHERE l.lead_identifier ILIKE '%' || $1 || '%'
		ORDER BY l.created_at DESC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeads(rows)
}

// ListTracked returns leads that entered the post-sale pipeline
// (non-null sub-status), newest first.
func (r *Repository) ListTracked(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+leadColumns+`
		FROM leads l
		LEFT JOIN users u ON u.id = l.assigned_to
		WHERE l.sub_status IS NOT NULL
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeads(rows)
}

func collectLeads(rows pgx.Rows) ([]Lead, error) {
	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

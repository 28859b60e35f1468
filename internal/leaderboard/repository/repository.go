// Package repository provides the two leaderboard source reads: activity
// log rows by instant range and assigned leads by date range.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRow is one activity log entry within the scoring window.
type ActivityRow struct {
	UserID     uuid.UUID
	Username   string
	ActionType string
}

// LeadRow is one assigned lead within the scoring window.
type LeadRow struct {
	UserID    uuid.UUID
	Username  string
	Status    string
	SubStatus *string
	Notes     string
}

// Repository reads the leaderboard source streams.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ActivityInWindow returns log rows with created_at in [start, end),
// oldest first.
func (r *Repository) ActivityInWindow(ctx context.Context, start, end time.Time) ([]ActivityRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT al.user_id, u.username, al.action_type
		FROM activity_logs al
		JOIN users u ON u.id = al.user_id
		WHERE al.created_at >= $1 AND al.created_at < $2
		ORDER BY al.created_at
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]ActivityRow, 0)
	for rows.Next() {
		var row ActivityRow
		if err := rows.Scan(&row.UserID, &row.Username, &row.ActionType); err != nil {
			return nil, err
		}
		entries = append(entries, row)
	}
	return entries, rows.Err()
}

// LeadsAssignedBetween returns assigned leads whose assignment date falls
// in [startDate, endDate], compared date-only and inclusive on both ends.
// This is coarser than the activity window on purpose; weekly totals
// depend on this exact boundary behavior.
func (r *Repository) LeadsAssignedBetween(ctx context.Context, startDate, endDate time.Time) ([]LeadRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.assigned_to, u.username, l.status, l.sub_status, l.notes
		FROM leads l
		JOIN users u ON u.id = l.assigned_to
		WHERE l.assigned_to IS NOT NULL
		  AND l.assigned_date >= $1::date
		  AND l.assigned_date <= $2::date
		ORDER BY l.created_at
	`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]LeadRow, 0)
	for rows.Next() {
		var row LeadRow
		if err := rows.Scan(&row.UserID, &row.Username, &row.Status, &row.SubStatus, &row.Notes); err != nil {
			return nil, err
		}
		leads = append(leads, row)
	}
	return leads, rows.Err()
}

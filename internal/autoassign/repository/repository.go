// Package repository provides data access for auto-assignment settings.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Setting is one user's auto-assignment configuration, joined with the
// user's account state so the runner can skip deactivated accounts.
type Setting struct {
	UserID       uuid.UUID
	Username     string
	DailyLimit   int
	IsEnabled    bool
	UserIsActive bool
	UpdatedAt    time.Time
}

// Repository handles auto-assignment settings persistence.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListEnabled returns the settings eligible for a run: enabled with a
// positive daily limit. Inactive users are included so the runner can
// report them as skipped.
func (r *Repository) ListEnabled(ctx context.Context) ([]Setting, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.user_id, u.username, s.daily_limit, s.is_enabled, u.is_active, s.updated_at
		FROM auto_assign_settings s
		JOIN users u ON u.id = s.user_id
		WHERE s.is_enabled AND s.daily_limit > 0
		ORDER BY u.username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSettings(rows)
}

// ListAll returns one row per user, merged with that user's settings when
// present. Users without a settings row get the zero configuration.
func (r *Repository) ListAll(ctx context.Context) ([]Setting, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username,
		       COALESCE(s.daily_limit, 0), COALESCE(s.is_enabled, false),
		       u.is_active, COALESCE(s.updated_at, u.created_at)
		FROM users u
		LEFT JOIN auto_assign_settings s ON s.user_id = u.id
		WHERE u.role <> 'admin'
		ORDER BY u.username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSettings(rows)
}

// Upsert creates or replaces a user's auto-assignment configuration.
func (r *Repository) Upsert(ctx context.Context, userID uuid.UUID, dailyLimit int, enabled bool) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO auto_assign_settings (user_id, daily_limit, is_enabled, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE
		SET daily_limit = EXCLUDED.daily_limit,
		    is_enabled = EXCLUDED.is_enabled,
		    updated_at = now()
	`, userID, dailyLimit, enabled)
	return err
}

func collectSettings(rows pgx.Rows) ([]Setting, error) {
	settings := make([]Setting, 0)
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.UserID, &s.Username, &s.DailyLimit, &s.IsEnabled, &s.UserIsActive, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

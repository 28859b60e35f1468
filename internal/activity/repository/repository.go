// Package repository provides data access for the activity log.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Log is one row of the append-only activity trail. Details is free-form
// JSON attached by the producer.
type Log struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ActionType string
	Points     int
	Details    map[string]interface{}
	CreatedAt  time.Time
}

// InsertLogParams carries the fields of a new activity log entry.
type InsertLogParams struct {
	UserID     uuid.UUID
	ActionType string
	Points     int
	Details    map[string]interface{}
}

// Repository handles activity log persistence.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, params InsertLogParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activity_logs (user_id, action_type, points, details)
		VALUES ($1, $2, $3, $4)
	`, params.UserID, params.ActionType, params.Points, params.Details)
	return err
}

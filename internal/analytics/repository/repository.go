// Package repository provides aggregate reads for the admin analytics view.
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DailyStat counts leads per assignment day.
type DailyStat struct {
	Date      time.Time
	Uploaded  int
	Completed int
}

// UserStat counts one user's assigned and completed leads across all time.
type UserStat struct {
	Username  string
	Assigned  int
	Completed int
}

// Repository reads lead aggregates for the analytics summary.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// DailyStats groups assigned leads per assignment day, oldest first.
func (r *Repository) DailyStats(ctx context.Context) ([]DailyStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT assigned_date,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'done')
		FROM leads
		WHERE assigned_date IS NOT NULL
		GROUP BY assigned_date
		ORDER BY assigned_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]DailyStat, 0)
	for rows.Next() {
		var s DailyStat
		if err := rows.Scan(&s.Date, &s.Uploaded, &s.Completed); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// UserStats groups assigned leads per owner.
func (r *Repository) UserStats(ctx context.Context) ([]UserStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.username,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE l.status = 'done')
		FROM leads l
		JOIN users u ON u.id = l.assigned_to
		GROUP BY u.username
		ORDER BY u.username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]UserStat, 0)
	for rows.Next() {
		var s UserStat
		if err := rows.Scan(&s.Username, &s.Assigned, &s.Completed); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

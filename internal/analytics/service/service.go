// Package service assembles the admin analytics summary.
package service

import (
	"context"

	"leaddesk_backend/internal/analytics/repository"
	"leaddesk_backend/internal/analytics/transport"
	"leaddesk_backend/platform/apperr"

	"golang.org/x/sync/errgroup"
)

// Repository defines the aggregate reads needed by the analytics service.
type Repository interface {
	DailyStats(ctx context.Context) ([]repository.DailyStat, error)
	UserStats(ctx context.Context) ([]repository.UserStat, error)
}

// Service computes the admin analytics summary.
type Service struct {
	repo Repository
}

// New creates a new analytics service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary returns daily upload/completion counts and per-user performance.
func (s *Service) Summary(ctx context.Context) (transport.SummaryResponse, error) {
	var (
		daily []repository.DailyStat
		users []repository.UserStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.repo.DailyStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.repo.UserStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.SummaryResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load analytics", err)
	}

	resp := transport.SummaryResponse{
		Daily:           make([]transport.DailyStat, len(daily)),
		UserPerformance: make([]transport.UserPerformance, len(users)),
	}
	for i, d := range daily {
		resp.Daily[i] = transport.DailyStat{
			Date:      d.Date.Format("2006-01-02"),
			Uploaded:  d.Uploaded,
			Completed: d.Completed,
		}
	}
	for i, u := range users {
		resp.UserPerformance[i] = transport.UserPerformance{
			Username:  u.Username,
			Assigned:  u.Assigned,
			Completed: u.Completed,
		}
	}
	return resp, nil
}

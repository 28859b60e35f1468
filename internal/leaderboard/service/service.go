// Package service computes the weekly leaderboard from two source streams:
// the activity log (instant-grained) and the lead table (date-grained).
package service

import (
	"context"
	"sort"
	"time"

	"leaddesk_backend/internal/leaderboard/repository"
	"leaddesk_backend/internal/leaderboard/transport"
	"leaddesk_backend/internal/leaderboard/week"
	"leaddesk_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Point values of the fixed scoring table. Each condition on a lead is
// scored once, additively.
const (
	pointsDone      = 5
	pointsRejected  = 1
	pointsReplied   = 10
	pointsBooked    = 50
	pointsClosed    = 100
	pointsNotes     = 2
	pointsHeartbeat = 1
)

// Repository defines the source reads needed by the leaderboard service.
type Repository interface {
	ActivityInWindow(ctx context.Context, start, end time.Time) ([]repository.ActivityRow, error)
	LeadsAssignedBetween(ctx context.Context, startDate, endDate time.Time) ([]repository.LeadRow, error)
}

// Service computes ranked weekly scores.
type Service struct {
	repo Repository
}

// New creates a new leaderboard service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Compute resolves the scoring week containing ref and returns the ranked
// board. Activity rows are matched by instant against [start, end); leads
// by assignment date against the window's calendar days, inclusive on both
// ends. Ranking is descending by points; ties keep encounter order.
func (s *Service) Compute(ctx context.Context, ref time.Time) (transport.LeaderboardResponse, error) {
	start, end := week.Window(ref)

	var (
		logs  []repository.ActivityRow
		leads []repository.LeadRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.repo.ActivityInWindow(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		leads, err = s.repo.LeadsAssignedBetween(gctx, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.LeaderboardResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load leaderboard sources", err)
	}

	entries := rank(logs, leads)
	return transport.LeaderboardResponse{WeekStart: start, WeekEnd: end, Entries: entries}, nil
}

func rank(logs []repository.ActivityRow, leads []repository.LeadRow) []transport.Entry {
	byUser := make(map[uuid.UUID]*transport.Entry)
	order := make([]uuid.UUID, 0)

	entry := func(userID uuid.UUID, username string) *transport.Entry {
		if e, ok := byUser[userID]; ok {
			return e
		}
		e := &transport.Entry{Username: username}
		byUser[userID] = e
		order = append(order, userID)
		return e
	}

	// Logs first, then leads. Every log row registers its user on the board,
	// but only time_spent rows score; lead_update rows would double-count
	// against the lead scan below.
	for _, row := range logs {
		e := entry(row.UserID, row.Username)
		if row.ActionType != "time_spent" {
			continue
		}
		e.Points += pointsHeartbeat
		e.TimeSpentMinutes++
	}

	for _, lead := range leads {
		e := entry(lead.UserID, lead.Username)

		switch lead.Status {
		case "done":
			e.Points += pointsDone
			e.Tasks++
		case "rejected":
			e.Points += pointsRejected
			e.Tasks++
		}

		if lead.SubStatus != nil {
			switch *lead.SubStatus {
			case "Replied":
				e.Points += pointsReplied
			case "Booked":
				e.Points += pointsBooked
			case "Closed":
				e.Points += pointsClosed
				e.Closed++
			}
		}

		if lead.Notes != "" {
			e.Points += pointsNotes
		}
	}

	entries := make([]transport.Entry, len(order))
	for i, userID := range order {
		entries[i] = *byUser[userID]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}

package service

import (
	"context"
	"testing"
	"time"

	"leaddesk_backend/internal/leaderboard/repository"

	"github.com/google/uuid"
)

type fakeRepo struct {
	logs  []repository.ActivityRow
	leads []repository.LeadRow

	gotStart, gotEnd time.Time
}

func (f *fakeRepo) ActivityInWindow(ctx context.Context, start, end time.Time) ([]repository.ActivityRow, error) {
	f.gotStart, f.gotEnd = start, end
	return f.logs, nil
}

func (f *fakeRepo) LeadsAssignedBetween(ctx context.Context, startDate, endDate time.Time) ([]repository.LeadRow, error) {
	return f.leads, nil
}

func strPtr(s string) *string { return &s }

func TestComputeScoringExample(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{
		leads: []repository.LeadRow{
			{UserID: userID, Username: "alice", Status: "done", SubStatus: strPtr("Closed"), Notes: "x"},
		},
	}
	for i := 0; i < 30; i++ {
		repo.logs = append(repo.logs, repository.ActivityRow{UserID: userID, Username: "alice", ActionType: "time_spent"})
	}
	svc := New(repo)

	resp, err := svc.Compute(context.Background(), time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(resp.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(resp.Entries))
	}
	e := resp.Entries[0]
	// 5 (done) + 100 (Closed) + 2 (notes) + 30 (heartbeats) = 137.
	if e.Points != 137 {
		t.Fatalf("points = %d, want 137", e.Points)
	}
	if e.Tasks != 1 || e.Closed != 1 || e.TimeSpentMinutes != 30 {
		t.Fatalf("counters = tasks %d closed %d minutes %d, want 1/1/30", e.Tasks, e.Closed, e.TimeSpentMinutes)
	}
}

func TestComputeIgnoresLeadUpdateLogs(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{
		logs: []repository.ActivityRow{
			{UserID: userID, Username: "alice", ActionType: "lead_update"},
			{UserID: userID, Username: "alice", ActionType: "time_spent"},
		},
	}
	svc := New(repo)

	resp, err := svc.Compute(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if resp.Entries[0].Points != 1 {
		t.Fatalf("points = %d, want 1 (lead_update rows must not score)", resp.Entries[0].Points)
	}
	if resp.Entries[0].TimeSpentMinutes != 1 {
		t.Fatalf("minutes = %d, want 1", resp.Entries[0].TimeSpentMinutes)
	}
}

func TestComputeListsUserWithOnlyLeadUpdateLogs(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{
		logs: []repository.ActivityRow{
			{UserID: userID, Username: "carol", ActionType: "lead_update"},
		},
	}
	svc := New(repo)

	resp, err := svc.Compute(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(resp.Entries) != 1 {
		t.Fatalf("got %d entries, want 1 (activity must place the user on the board)", len(resp.Entries))
	}
	e := resp.Entries[0]
	if e.Username != "carol" || e.Points != 0 || e.TimeSpentMinutes != 0 {
		t.Fatalf("entry = %+v, want carol with zero points and minutes", e)
	}
}

func TestComputeRejectedAndUnownedScoring(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{
		leads: []repository.LeadRow{
			{UserID: userID, Username: "bob", Status: "rejected", Notes: ""},
			{UserID: userID, Username: "bob", Status: "pending", SubStatus: strPtr("Replied"), Notes: "note"},
		},
	}
	svc := New(repo)

	resp, err := svc.Compute(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	e := resp.Entries[0]
	// rejected 1 + Replied 10 + notes 2 = 13; only the rejected lead counts
	// as a finished task.
	if e.Points != 13 {
		t.Fatalf("points = %d, want 13", e.Points)
	}
	if e.Tasks != 1 {
		t.Fatalf("tasks = %d, want 1", e.Tasks)
	}
}

func TestComputeRankingIsStableOnTies(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	top := uuid.New()
	repo := &fakeRepo{
		logs: []repository.ActivityRow{
			{UserID: first, Username: "first", ActionType: "time_spent"},
			{UserID: second, Username: "second", ActionType: "time_spent"},
			{UserID: top, Username: "top", ActionType: "time_spent"},
			{UserID: top, Username: "top", ActionType: "time_spent"},
		},
	}
	svc := New(repo)

	resp, err := svc.Compute(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if resp.Entries[0].Username != "top" {
		t.Fatalf("rank 1 = %q, want top", resp.Entries[0].Username)
	}
	if resp.Entries[1].Username != "first" || resp.Entries[2].Username != "second" {
		t.Fatalf("tied users reordered: %q, %q", resp.Entries[1].Username, resp.Entries[2].Username)
	}
}

func TestComputePassesResolvedWindow(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	ref := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	resp, err := svc.Compute(context.Background(), ref)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	wantStart := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	if !repo.gotStart.Equal(wantStart) {
		t.Fatalf("window start passed to repo = %v, want %v", repo.gotStart, wantStart)
	}
	if !resp.WeekStart.Equal(wantStart) || !resp.WeekEnd.Equal(wantStart.AddDate(0, 0, 7)) {
		t.Fatalf("response window = [%v, %v)", resp.WeekStart, resp.WeekEnd)
	}
}

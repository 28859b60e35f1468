package week

import (
	"testing"
	"time"
)

func TestWindowMidweek(t *testing.T) {
	// Wednesday 2025-06-18 14:30.
	ref := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

	start, end := Window(ref)

	wantStart := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantStart.AddDate(0, 0, 7)) {
		t.Fatalf("end = %v, want %v", end, wantStart.AddDate(0, 0, 7))
	}
}

func TestWindowMondayBeforeNine(t *testing.T) {
	// Monday 2025-06-16 08:59:59 belongs to the week starting 2025-06-09.
	ref := time.Date(2025, 6, 16, 8, 59, 59, 0, time.UTC)

	start, _ := Window(ref)

	wantStart := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", start, wantStart)
	}
}

func TestWindowMondayAtNineExactly(t *testing.T) {
	ref := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	start, _ := Window(ref)

	if !start.Equal(ref) {
		t.Fatalf("start = %v, want the reference Monday 09:00 itself", start)
	}
}

func TestWindowSundayRollsBackToPreviousMonday(t *testing.T) {
	// Sunday 2025-06-22 23:00 is still inside the week of Monday 2025-06-16.
	ref := time.Date(2025, 6, 22, 23, 0, 0, 0, time.UTC)

	start, end := Window(ref)

	wantStart := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", start, wantStart)
	}
	if !ref.Before(end) {
		t.Fatalf("reference %v not inside window ending %v", ref, end)
	}
}

func TestWindowIsHalfOpen(t *testing.T) {
	ref := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	start, end := Window(ref)

	if end.Sub(start) != 7*24*time.Hour {
		t.Fatalf("window length = %v, want 168h", end.Sub(start))
	}

	// The instant at end belongs to the next window.
	nextStart, _ := Window(end)
	if !nextStart.Equal(end) {
		t.Fatalf("Window(end) start = %v, want %v", nextStart, end)
	}
}

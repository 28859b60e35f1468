// Package week resolves the scoring week containing a reference instant.
// Weeks run Monday 09:00 local time to the next Monday 09:00, half-open.
package week

import "time"

// Window returns the [start, end) scoring week containing ref. A Monday
// before 09:00 still belongs to the previous week.
func Window(ref time.Time) (start, end time.Time) {
	daysSinceMonday := (int(ref.Weekday()) + 6) % 7
	start = time.Date(ref.Year(), ref.Month(), ref.Day(), 9, 0, 0, 0, ref.Location()).
		AddDate(0, 0, -daysSinceMonday)

	if ref.Weekday() == time.Monday && ref.Hour() < 9 {
		start = start.AddDate(0, 0, -7)
	} else if start.After(ref) {
		// DST shifts can still land start past ref.
		start = start.AddDate(0, 0, -7)
	}

	return start, start.AddDate(0, 0, 7)
}

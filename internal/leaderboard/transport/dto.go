// Package transport defines the response DTOs of the leaderboard module.
package transport

import "time"

// Entry is one ranked leaderboard row.
type Entry struct {
	Username         string `json:"username"`
	Points           int    `json:"points"`
	TimeSpentMinutes int    `json:"timeSpentMinutes"`
	Tasks            int    `json:"tasks"`
	Closed           int    `json:"closed"`
}

type LeaderboardResponse struct {
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
	Entries   []Entry   `json:"entries"`
}

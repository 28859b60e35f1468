// Package transport defines the request/response DTOs of the autoassign module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type SettingInput struct {
	UserID     uuid.UUID `json:"userId" validate:"required"`
	DailyLimit int       `json:"dailyLimit" validate:"min=0"`
	IsEnabled  bool      `json:"isEnabled"`
}

// SaveSettingsRequest replaces the configuration of every listed user in
// one call; the admin screen submits the whole table at once.
type SaveSettingsRequest struct {
	Settings []SettingInput `json:"settings" validate:"required,min=1,dive"`
}

type SettingResponse struct {
	UserID       uuid.UUID `json:"userId"`
	Username     string    `json:"username"`
	DailyLimit   int       `json:"dailyLimit"`
	IsEnabled    bool      `json:"isEnabled"`
	UserIsActive bool      `json:"userIsActive"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SettingsResponse struct {
	Items []SettingResponse `json:"items"`
}

// RunUserResult reports the outcome of one user's slice of a run.
type RunUserResult struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Assigned int       `json:"assigned"`
	Status   string    `json:"status"`
}

type RunResponse struct {
	Success       bool            `json:"success"`
	TotalAssigned int             `json:"totalAssigned"`
	Results       []RunUserResult `json:"results"`
}

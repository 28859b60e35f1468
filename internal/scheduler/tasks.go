// Package scheduler runs background jobs over asynq: the daily
// auto-assignment pass and its periodic trigger.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAutoAssignRun = "autoassign.run"

type AutoAssignRunPayload struct {
	TriggeredBy string `json:"triggeredBy"`
}

func NewAutoAssignRunTask(payload AutoAssignRunPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAutoAssignRun, data), nil
}

func ParseAutoAssignRunPayload(task *asynq.Task) (AutoAssignRunPayload, error) {
	var payload AutoAssignRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AutoAssignRunPayload{}, err
	}
	return payload, nil
}

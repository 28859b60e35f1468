package scheduler

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "leaddesk" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }
func (c testSchedulerConfig) GetAutoAssignCron() string { return "0 9 * * *" }

func TestClientEnqueueAutoAssignRun(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	if err := client.EnqueueAutoAssignRun(context.Background(), "test"); err != nil {
		t.Fatalf("EnqueueAutoAssignRun() error = %v", err)
	}

	found := false
	for _, key := range srv.Keys() {
		if strings.HasPrefix(key, "asynq:") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no asynq keys written, got %v", srv.Keys())
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatalf("NewClient() with empty redis url did not fail")
	}
}

func TestTaskPayloadRoundTrip(t *testing.T) {
	task, err := NewAutoAssignRunTask(AutoAssignRunPayload{TriggeredBy: "schedule"})
	if err != nil {
		t.Fatalf("NewAutoAssignRunTask() error = %v", err)
	}
	if task.Type() != TaskAutoAssignRun {
		t.Fatalf("task type = %q, want %q", task.Type(), TaskAutoAssignRun)
	}

	payload, err := ParseAutoAssignRunPayload(task)
	if err != nil {
		t.Fatalf("ParseAutoAssignRunPayload() error = %v", err)
	}
	if payload.TriggeredBy != "schedule" {
		t.Fatalf("triggeredBy = %q, want schedule", payload.TriggeredBy)
	}
}

package scheduler

import (
	"context"
	"fmt"

	"leaddesk_backend/internal/autoassign/transport"
	"leaddesk_backend/platform/config"
	"leaddesk_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// AutoAssignRunner executes one auto-assignment pass. Implemented by the
// autoassign service.
type AutoAssignRunner interface {
	Run(ctx context.Context, triggeredBy string) (transport.RunResponse, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	runner AutoAssignRunner
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, runner AutoAssignRunner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		runner: runner,
		log:    log,
	}

	mux.HandleFunc(TaskAutoAssignRun, w.handleAutoAssignRun)

	return w, nil
}

func (w *Worker) handleAutoAssignRun(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAutoAssignRunPayload(task)
	if err != nil {
		return err
	}

	resp, err := w.runner.Run(ctx, payload.TriggeredBy)
	if err != nil {
		return err
	}

	w.log.Info("auto-assign task processed",
		"triggeredBy", payload.TriggeredBy,
		"totalAssigned", resp.TotalAssigned,
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// Package worker runs queued jobs by type.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segyhp/kos-management/internal/queue"
)

// Queue is the consumer side of queue.RedisQueue
type Queue interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Job, error)
	Ack(ctx context.Context, job *queue.Job) error
	Retry(ctx context.Context, job *queue.Job, cause error) error
	Bury(ctx context.Context, job *queue.Job, cause error) error
}

// HandlerFunc executes one job. Handlers must be idempotent: a job can run
// more than once.
type HandlerFunc func(ctx context.Context, job *queue.Job) error

type Worker struct {
	queue       Queue
	handlers    map[string]HandlerFunc
	maxAttempts int
	pollTimeout time.Duration
	log         *slog.Logger
}

func New(q Queue, maxAttempts int, pollTimeout time.Duration, log *slog.Logger) *Worker {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if log == nil {
		log = slog.Default()
	}

	return &Worker{
		queue:       q,
		handlers:    make(map[string]HandlerFunc),
		maxAttempts: maxAttempts,
		pollTimeout: pollTimeout,
		log:         log,
	}
}

// Register binds a handler to a job type
func (w *Worker) Register(jobType string, h HandlerFunc) {
	w.handlers[jobType] = h
}

// Run processes jobs until ctx is cancelled
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("worker started", "job_types", len(w.handlers), "max_attempts", w.maxAttempts)

	for {
		if ctx.Err() != nil {
			w.log.Info("worker stopped")
			return nil
		}

		if _, err := w.ProcessNext(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			w.log.Error("worker iteration failed", "error", err)
			// back off so a broken Redis does not spin the loop
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}

// ProcessNext waits for one job and runs it. It reports whether a job was
// taken off the queue.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	job, err := w.queue.Dequeue(ctx, w.pollTimeout)
	if err != nil {
		return false, err
	}
	if job == nil {
		return false, nil
	}

	log := w.log.With("job_id", job.ID, "job_type", job.Type, "attempt", job.Attempts+1)

	handler, ok := w.handlers[job.Type]
	if !ok {
		log.Error("no handler for job type")
		return true, w.queue.Bury(ctx, job, fmt.Errorf("unknown job type %q", job.Type))
	}

	if err := w.run(ctx, handler, job); err != nil {
		if job.Attempts+1 >= w.maxAttempts {
			log.Error("job failed, giving up", "error", err)
			return true, w.queue.Bury(ctx, job, err)
		}
		log.Warn("job failed, retrying", "error", err)
		return true, w.queue.Retry(ctx, job, err)
	}

	log.Info("job done")
	return true, w.queue.Ack(ctx, job)
}

func (w *Worker) run(ctx context.Context, handler HandlerFunc, job *queue.Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, job)
}

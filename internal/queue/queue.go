// Package queue is an at-least-once job queue on Redis lists. Jobs move
// atomically from the pending list to a processing list while a worker runs
// them and are removed only on Ack, so a crashed worker's jobs can be put back
// with Recover.
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Job is the envelope stored in Redis
type Job struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	LastError  string          `json:"last_error,omitempty"`

	// raw is the exact list element, needed to LREM it on ack
	raw string
}

// Decode unmarshals the payload into v
func (j *Job) Decode(v any) error {
	if err := json.Unmarshal(j.Payload, v); err != nil {
		return fmt.Errorf("job %s: invalid %s payload: %w", j.ID, j.Type, err)
	}
	return nil
}

// Enqueuer hands work to the queue without waiting for it
type Enqueuer interface {
	Enqueue(ctx context.Context, jobType string, payload any) (*Job, error)
}

type RedisQueue struct {
	client     *redis.Client
	pending    string
	processing string
	dead       string
}

func NewRedisQueue(client *redis.Client, name string) *RedisQueue {
	return &RedisQueue{
		client:     client,
		pending:    name,
		processing: name + ":processing",
		dead:       name + ":dead",
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, jobType string, payload any) (*Job, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", jobType, err)
	}

	job := &Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		Payload:    body,
		EnqueuedAt: time.Now().UTC(),
	}

	if err := q.push(ctx, q.client, q.pending, job); err != nil {
		return nil, err
	}

	return job, nil
}

// Dequeue blocks up to timeout for the next job. It returns nil, nil when
// the wait times out.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	raw, err := q.client.BLMove(ctx, q.pending, q.processing, "RIGHT", "LEFT", timeout).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue from %s: %w", q.pending, err)
	}

	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		// unreadable element: park it so it does not block the list
		q.client.LRem(ctx, q.processing, 1, raw)
		q.client.LPush(ctx, q.dead, raw)
		return nil, fmt.Errorf("discarded malformed job: %w", err)
	}
	job.raw = raw

	return &job, nil
}

// Ack removes a finished job from the processing list
func (q *RedisQueue) Ack(ctx context.Context, job *Job) error {
	if err := q.client.LRem(ctx, q.processing, 1, job.raw).Err(); err != nil {
		return fmt.Errorf("failed to ack job %s: %w", job.ID, err)
	}
	return nil
}

// Retry puts a failed job back on the pending list with its attempt count bumped
func (q *RedisQueue) Retry(ctx context.Context, job *Job, cause error) error {
	return q.move(ctx, job, q.pending, cause)
}

// Bury moves a job that will not be retried to the dead-letter list
func (q *RedisQueue) Bury(ctx context.Context, job *Job, cause error) error {
	return q.move(ctx, job, q.dead, cause)
}

func (q *RedisQueue) move(ctx context.Context, job *Job, to string, cause error) error {
	old := job.raw
	job.Attempts++
	if cause != nil {
		job.LastError = cause.Error()
	}

	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, q.processing, 1, old)
		return q.push(ctx, pipe, to, job)
	})
	if err != nil {
		return fmt.Errorf("failed to move job %s to %s: %w", job.ID, to, err)
	}
	return nil
}

// Recover moves every job left in the processing list back to pending. Run
// it once at worker start, before any job is dequeued.
func (q *RedisQueue) Recover(ctx context.Context) (int, error) {
	moved := 0
	for {
		err := q.client.LMove(ctx, q.processing, q.pending, "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, fmt.Errorf("failed to recover jobs: %w", err)
		}
		moved++
	}
}

// Len reports the number of pending jobs
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.pending).Result()
}

func (q *RedisQueue) push(ctx context.Context, c redis.Cmdable, list string, job *Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job %s: %w", job.ID, err)
	}
	job.raw = string(raw)

	if err := c.LPush(ctx, list, job.raw).Err(); err != nil {
		return fmt.Errorf("failed to push job %s to %s: %w", job.ID, list, err)
	}
	return nil
}

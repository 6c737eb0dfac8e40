package queue

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reminderPayload struct {
	ExpenseID int64 `json:"expense_id"`
}

func setupQueue(t *testing.T) (*RedisQueue, *redis.Client) {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())

	name := "kos:test:" + uuid.NewString()
	q := NewRedisQueue(client, name)
	t.Cleanup(func() {
		client.Del(context.Background(), q.pending, q.processing, q.dead)
		client.Close()
	})
	return q, client
}

func TestJob_Decode(t *testing.T) {
	job := &Job{ID: "1", Type: "operational_expense_reminder", Payload: []byte(`{"expense_id":7}`)}

	var p reminderPayload
	require.NoError(t, job.Decode(&p))
	assert.Equal(t, int64(7), p.ExpenseID)

	job.Payload = []byte(`not json`)
	assert.Error(t, job.Decode(&p))
}

func TestRedisQueue_EnqueueDequeueAck(t *testing.T) {
	q, client := setupQueue(t)
	ctx := context.Background()

	first, err := q.Enqueue(ctx, "operational_expense_reminder", reminderPayload{ExpenseID: 1})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "operational_expense_reminder", reminderPayload{ExpenseID: 2})
	require.NoError(t, err)

	job, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, first.ID, job.ID, "FIFO")

	assert.EqualValues(t, 1, client.LLen(ctx, q.processing).Val())

	require.NoError(t, q.Ack(ctx, job))
	assert.EqualValues(t, 0, client.LLen(ctx, q.processing).Val())

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRedisQueue_DequeueTimeout(t *testing.T) {
	q, _ := setupQueue(t)

	job, err := q.Dequeue(context.Background(), 100*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestRedisQueue_RetryAndBury(t *testing.T) {
	q, client := setupQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, "operational_expense_reminder", reminderPayload{ExpenseID: 3})
	require.NoError(t, err)

	job, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NoError(t, q.Retry(ctx, job, errors.New("db down")))

	again, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, job.ID, again.ID)
	assert.Equal(t, 1, again.Attempts)
	assert.Equal(t, "db down", again.LastError)

	require.NoError(t, q.Bury(ctx, again, errors.New("still down")))
	assert.EqualValues(t, 0, client.LLen(ctx, q.processing).Val())
	assert.EqualValues(t, 1, client.LLen(ctx, q.dead).Val())
}

func TestRedisQueue_Recover(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, "operational_expense_reminder", reminderPayload{ExpenseID: 4})
	require.NoError(t, err)
	abandoned, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	moved, err := q.Recover(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	job, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, abandoned.ID, job.ID)
}

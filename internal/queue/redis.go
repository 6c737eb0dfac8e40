package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/segyhp/kos-management/internal/config"
)

// Connect creates the Redis client and checks it with a ping
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	return client, nil
}

// Package redis opens the go-redis client used by the projection store.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialCheckTimeout = 5 * time.Second

// Config holds the connection settings read from REDIS_ADDR, REDIS_DB and
// REDIS_PASSWORD.
type Config struct {
	Addr     string
	DB       int
	Password string
	// Timeout bounds the startup ping. Zero means five seconds.
	Timeout time.Duration
}

// Connect returns a client that has answered one PING. The client is closed
// again when the ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialCheckTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Package rediscache implements the production Cache, EventBus, and
// StatusStore backends on top of Redis: a Fingerprint Cache keyed by
// workflow and task id, a pub/sub Event Bus, and the workflow/task
// status hashes the Control Session reads.
package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

const (
	maxRetries   = 3
	retryBackoff = 100 * time.Millisecond
)

// Client bundles the Redis connection shared by Cache, Bus, and
// StatusStore, all backed by the same keyspace.
type Client struct {
	rdb *redis.Client
}

// NewClient dials Redis at addr.
func NewClient(addr string) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// NewClientFromRedis wraps an already-constructed redis.Client, used by
// tests to point at an in-process miniredis instance.
func NewClientFromRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// withRetry runs op up to maxRetries times, doubling the backoff after
// each failed attempt (retryBackoff << attempt),
// surfacing the last failure as a *domain.TransientBusError.
func withRetry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := fn(); err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return domain.NewTransientBusError(op, ctx.Err())
			case <-time.After(retryBackoff << attempt):
			}
			continue
		}
		return nil
	}
	return domain.NewTransientBusError(op, zerr.Wrap(lastErr, "redis: retries exhausted"))
}

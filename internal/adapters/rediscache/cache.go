package rediscache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

var _ ports.Cache = (*Cache)(nil)

// Cache implements ports.Cache on a shared Redis keyspace, one string key
// per (workflow, task) pair holding the JSON-encoded cache entry.
type Cache struct {
	client *Client
}

// NewCache wraps client as a ports.Cache.
func NewCache(client *Client) *Cache {
	return &Cache{client: client}
}

func cacheKey(wfKey, taskID string) string {
	return wfKey + ":cache:" + taskID
}

// Load retrieves the cache entry for (wfKey, taskID), returning nil, nil
// when the key is absent.
func (c *Cache) Load(ctx context.Context, wfKey, taskID string) (*domain.CacheEntry, error) {
	var raw string
	err := withRetry(ctx, "cache.load", func() error {
		var getErr error
		raw, getErr = c.client.rdb.Get(ctx, cacheKey(wfKey, taskID)).Result()
		if errors.Is(getErr, redis.Nil) {
			return nil
		}
		return getErr
	})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var entry domain.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Store writes the cache entry for (wfKey, taskID) with no expiry.
func (c *Cache) Store(ctx context.Context, wfKey, taskID string, entry domain.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return withRetry(ctx, "cache.store", func() error {
		return c.client.rdb.Set(ctx, cacheKey(wfKey, taskID), data, 0).Err()
	})
}

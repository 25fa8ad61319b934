package redis

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key pattern: unread:{participant_id} - aggregate unread badge
// count, written through on every recompute.

// UnreadCacheConfig contains configuration for the unread-count cache
type UnreadCacheConfig struct {
	TTL time.Duration
}

func DefaultUnreadCacheConfig() UnreadCacheConfig {
	return UnreadCacheConfig{TTL: 5 * time.Minute}
}

// UnreadCache caches the per-participant aggregate unread count. The
// message store remains the source of truth; every miss falls back to
// a count query.
type UnreadCache struct {
	client *goredis.Client
	config UnreadCacheConfig
}

func NewUnreadCache(client *goredis.Client, config UnreadCacheConfig) *UnreadCache {
	return &UnreadCache{client: client, config: config}
}

const unreadKeyPrefix = "unread:"

// Get returns the cached count. The bool is false on a miss.
func (c *UnreadCache) Get(ctx context.Context, participantID string) (int64, bool, error) {
	data, err := c.client.Get(ctx, unreadKeyPrefix+participantID).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	count, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// Set writes through a freshly recomputed count.
func (c *UnreadCache) Set(ctx context.Context, participantID string, count int64) error {
	return c.client.Set(ctx, unreadKeyPrefix+participantID, strconv.FormatInt(count, 10), c.config.TTL).Err()
}

// Invalidate drops the cached count.
func (c *UnreadCache) Invalidate(ctx context.Context, participantID string) error {
	return c.client.Del(ctx, unreadKeyPrefix+participantID).Err()
}

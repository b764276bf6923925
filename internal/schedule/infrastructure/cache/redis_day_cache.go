// Package cache provides a Redis-backed read cache for archived day grids.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/temporahq/tempora/internal/schedule/application/queries"
)

// DefaultTTL bounds how long an archived day stays cached. Archived grids
// never mutate, so the TTL only limits memory, not staleness.
const DefaultTTL = 24 * time.Hour

// RedisDayCache caches archived DayScheduleDTOs as JSON.
// Keys are namespaced: tempora:user:{user_id}:day:{date}
type RedisDayCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisDayCache creates a new RedisDayCache.
func NewRedisDayCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisDayCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisDayCache{client: client, ttl: ttl, logger: logger}
}

func dayKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("tempora:user:%s:day:%s", userID, day.Format("2006-01-02"))
}

// Get returns the cached read model for the day, if any. Cache failures are
// logged and reported as misses.
func (c *RedisDayCache) Get(ctx context.Context, userID uuid.UUID, day time.Time) (*queries.DayScheduleDTO, bool) {
	data, err := c.client.Get(ctx, dayKey(userID, day)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("day cache read failed", "error", err)
		return nil, false
	}

	var dto queries.DayScheduleDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		c.logger.Warn("day cache entry corrupt, dropping", "error", err)
		c.client.Del(ctx, dayKey(userID, day))
		return nil, false
	}
	return &dto, true
}

// Put stores the read model. Only archived days belong here; the caller
// enforces that.
func (c *RedisDayCache) Put(ctx context.Context, dto *queries.DayScheduleDTO) {
	data, err := json.Marshal(dto)
	if err != nil {
		c.logger.Warn("day cache marshal failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, dayKey(dto.UserID, dto.Day), data, c.ttl).Err(); err != nil {
		c.logger.Warn("day cache write failed", "error", err)
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/raffleworks/raffle-api/internal/dto"
)

// StatsCache keeps per-activity stats aggregations in Redis for a short TTL.
// A nil cache (or nil client) degrades to pass-through; cache failures are
// logged and never surface to callers.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStatsCache builds a stats cache around the given Redis client.
func NewStatsCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *StatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "stats_cache").Logger(),
	}
}

func statsCacheKey(activityID uint) string {
	return fmt.Sprintf("stats:activity:%d", activityID)
}

// Get returns the cached stats for an activity and whether the lookup hit.
func (c *StatsCache) Get(ctx context.Context, activityID uint) (dto.ActivityStats, bool) {
	if c == nil || c.client == nil {
		return dto.ActivityStats{}, false
	}

	cached, err := c.client.Get(ctx, statsCacheKey(activityID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Uint("activity_id", activityID).Msg("failed to read stats cache")
		}
		return dto.ActivityStats{}, false
	}

	var stats dto.ActivityStats
	if err := json.Unmarshal([]byte(cached), &stats); err != nil {
		return dto.ActivityStats{}, false
	}

	return stats, true
}

// Set stores the stats for an activity under the configured TTL.
func (c *StatsCache) Set(ctx context.Context, activityID uint, stats dto.ActivityStats) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, statsCacheKey(activityID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Uint("activity_id", activityID).Msg("failed to store stats cache")
	}
}

// Invalidate drops the cached stats after any write that changes the counters.
func (c *StatsCache) Invalidate(ctx context.Context, activityID uint) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, statsCacheKey(activityID)).Err(); err != nil {
		c.logger.Warn().Err(err).Uint("activity_id", activityID).Msg("failed to invalidate stats cache")
	}
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// StatsCache caches the admin user stats under a single key.
type StatsCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, key string, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, key: key, ttl: ttl}
}

// GetUserStats returns (nil, nil) on a cache miss.
func (c *StatsCache) GetUserStats(ctx context.Context) (*domain.UserStats, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.UserStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

func (c *StatsCache) SaveUserStats(ctx context.Context, stats *domain.UserStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("stats cache set: %w", err)
	}
	return nil
}

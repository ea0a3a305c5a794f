package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// statsCacheTTL keeps dashboard numbers fresh without recomputing on
// every page load. Status changes invalidate the entry immediately.
const statsCacheTTL = 2 * time.Minute

// Cache stores computed dashboard stats in Redis, keyed by the
// professional's profile ID. A nil Redis client disables caching.
type Cache struct {
	redis *redis.Client
}

// NewCache creates dashboard stats cache
func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{redis: redisClient}
}

func statsKey(professionalID uuid.UUID) string {
	return fmt.Sprintf("dashboard:stats:%s", professionalID)
}

// Get returns cached stats, or nil on miss.
func (c *Cache) Get(ctx context.Context, professionalID uuid.UUID) (*Stats, error) {
	if c.redis == nil {
		return nil, nil
	}

	data, err := c.redis.Get(ctx, statsKey(professionalID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Set stores stats for a professional.
func (c *Cache) Set(ctx context.Context, professionalID uuid.UUID, stats *Stats) error {
	if c.redis == nil {
		return nil
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, statsKey(professionalID), data, statsCacheTTL).Err()
}

// Invalidate drops the cached stats for a professional. Satisfies
// booking.StatsInvalidator.
func (c *Cache) Invalidate(ctx context.Context, professionalID uuid.UUID) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Del(ctx, statsKey(professionalID)).Err()
}

package persistence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	occupancyKeyPrefix = "venue:occupancy:"
	sampleKeyPrefix    = "venue:occupancy:samples:"
	maxSamples         = 12
	sampleTTL          = 2 * time.Hour
)

// OccupancyCache keeps the live occupancy count and a short trailing window
// of samples per venue in Redis. The database row remains the source of
// truth; the cache serves realtime reads and the occupancy predictor.
type OccupancyCache struct {
	client redis.Cmdable
}

// NewOccupancyCache builds a cache over the given Redis client.
func NewOccupancyCache(client redis.Cmdable) *OccupancyCache {
	return &OccupancyCache{client: client}
}

// Set records the current occupancy and appends it to the sample window.
func (c *OccupancyCache) Set(ctx context.Context, venueID int64, count int) error {
	if c.client == nil {
		return nil
	}
	key := occupancyKey(venueID)
	if err := c.client.Set(ctx, key, count, 0).Err(); err != nil {
		return err
	}

	sampleKey := sampleKeyPrefix + strconv.FormatInt(venueID, 10)
	pipe := c.client.Pipeline()
	pipe.LPush(ctx, sampleKey, count)
	pipe.LTrim(ctx, sampleKey, 0, maxSamples-1)
	pipe.Expire(ctx, sampleKey, sampleTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Get returns the cached occupancy, or ok=false on a miss or cache outage.
func (c *OccupancyCache) Get(ctx context.Context, venueID int64) (count int, ok bool) {
	if c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, occupancyKey(venueID)).Int()
	if err != nil {
		return 0, false
	}
	return val, true
}

// RecentSamples returns up to maxSamples occupancy values, newest first.
func (c *OccupancyCache) RecentSamples(ctx context.Context, venueID int64) ([]int, error) {
	if c.client == nil {
		return nil, nil
	}
	key := sampleKeyPrefix + strconv.FormatInt(venueID, 10)
	raw, err := c.client.LRange(ctx, key, 0, maxSamples-1).Result()
	if err != nil {
		return nil, err
	}

	samples := make([]int, 0, len(raw))
	for _, item := range raw {
		val, err := strconv.Atoi(item)
		if err != nil {
			continue
		}
		samples = append(samples, val)
	}
	return samples, nil
}

func occupancyKey(venueID int64) string {
	return fmt.Sprintf("%s%d", occupancyKeyPrefix, venueID)
}

package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ReviewCounter keeps per-day review counts in Redis so the daily load
// monitor can skip a log scan on the hot path. Counts expire after two
// days; a miss falls back to the review log, so losing them is harmless.
type ReviewCounter struct {
	redis *redis.Client
}

func NewReviewCounter(redisClient *redis.Client) *ReviewCounter {
	return &ReviewCounter{redis: redisClient}
}

func counterKey(userID, deckID uuid.UUID, day string) string {
	return fmt.Sprintf("reviews:%s:%s:%s", userID, deckID, day)
}

func (c *ReviewCounter) IncrToday(ctx context.Context, userID, deckID uuid.UUID, day string) error {
	key := counterKey(userID, deckID, day)
	pipe := c.redis.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 48*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *ReviewCounter) GetToday(ctx context.Context, userID, deckID uuid.UUID, day string) (int, bool, error) {
	val, err := c.redis.Get(ctx, counterKey(userID, deckID, day)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prperemyshlev/videotube/pkg/database"
	"github.com/redis/go-redis/v9"
)

// RateLimiter keeps a sliding window log per key in a Redis sorted set
type RateLimiter struct {
	redis *database.Redis
	now   func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis, now: time.Now}
}

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Allow records a hit for key when it fits into the window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Decision, error) {
	now := r.now()
	redisKey := r.redis.Key("ratelimit", key)
	windowStart := strconv.FormatInt(now.Add(-window).UnixMilli(), 10)

	pipe := r.redis.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", windowStart)
	card := pipe.ZCard(ctx, redisKey)
	oldest := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to read rate limit window: %w", err)
	}

	count := int(card.Val())
	if count >= limit {
		decision := &Decision{Allowed: false, RetryAfter: window}
		if entries := oldest.Val(); len(entries) > 0 {
			first := time.UnixMilli(int64(entries[0].Score))
			decision.RetryAfter = window - now.Sub(first)
		}
		return decision, nil
	}

	pipe = r.redis.Client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, redisKey, window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to record request: %w", err)
	}

	return &Decision{Allowed: true, Remaining: limit - count - 1}, nil
}

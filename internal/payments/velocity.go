package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripuva/booking-relay/pkg/logging"
)

// LinkVelocityChecker caps how many payment links one phone number can
// request inside a window, so a chat loop cannot mint links indefinitely.
type LinkVelocityChecker struct {
	redis  *redis.Client
	logger *logging.Logger
	limit  int
	window time.Duration
}

// NewLinkVelocityChecker creates a checker over the given Redis client.
func NewLinkVelocityChecker(redisClient *redis.Client, limit int, window time.Duration, logger *logging.Logger) *LinkVelocityChecker {
	if logger == nil {
		logger = logging.Default()
	}
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Hour
	}
	return &LinkVelocityChecker{
		redis:  redisClient,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// Allow counts this request against the phone's window and reports whether
// it is within the cap. A Redis failure fails open: payment links keep
// working when the cache is down.
func (v *LinkVelocityChecker) Allow(ctx context.Context, phone string) bool {
	if v == nil || v.redis == nil {
		return true
	}

	key := fmt.Sprintf("velocity:paylink:%s", phone)
	count, err := v.redis.Incr(ctx, key).Result()
	if err != nil {
		v.logger.Error("payment link velocity check failed", "error", err, "key", key)
		return true
	}
	if count == 1 {
		v.redis.Expire(ctx, key, v.window)
	}

	allowed := count <= int64(v.limit)
	if !allowed {
		v.logger.Warn("payment link velocity exceeded",
			"phone", phone,
			"count", count,
			"max", v.limit,
		)
	}
	return allowed
}

// Reset clears the counter for a phone (operator use).
func (v *LinkVelocityChecker) Reset(ctx context.Context, phone string) error {
	return v.redis.Del(ctx, fmt.Sprintf("velocity:paylink:%s", phone)).Err()
}

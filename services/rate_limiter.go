package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"notesapi/utils"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter decides whether the caller identified by key may proceed. When it may
// not, retryAfter is how long until it may.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

const defaultMaxTrackedKeys = 10000

// LocalRateLimiter keeps a token bucket per key in process memory.
type LocalRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	maxKeys  int
	clock    utils.Clock
}

func NewLocalRateLimiter(rps, burst int, clock utils.Clock) *LocalRateLimiter {
	if burst < 1 {
		burst = 1
	}
	if clock == nil {
		clock = utils.RealTime{}
	}
	return &LocalRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		maxKeys:  defaultMaxTrackedKeys,
		clock:    clock,
	}
}

func (l *LocalRateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := l.clock.Now()
	limiter := l.limiterFor(key)

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0, nil
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

func (l *LocalRateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if ok {
		return limiter
	}

	// the table is dropped wholesale once full; clients just get a fresh bucket
	if len(l.limiters) >= l.maxKeys {
		l.limiters = make(map[string]*rate.Limiter)
	}
	limiter = rate.NewLimiter(l.rps, l.burst)
	l.limiters[key] = limiter
	return limiter
}

// RedisRateLimiter counts requests per key in fixed windows shared by every replica.
type RedisRateLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	prefix string
	clock  utils.Clock
}

// NewRedisRateLimiter allows rps*window requests per key per window, never less than burst.
func NewRedisRateLimiter(client redis.Cmdable, rps, burst int, window time.Duration, clock utils.Clock) *RedisRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	limit := int64(float64(rps) * window.Seconds())
	if limit < int64(burst) {
		limit = int64(burst)
	}
	if limit < 1 {
		limit = 1
	}
	if clock == nil {
		clock = utils.RealTime{}
	}
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit",
		clock:  clock,
	}
}

// WindowKey is the Redis key holding the counter for key in the window containing now.
func (l *RedisRateLimiter) WindowKey(key string, now time.Time) string {
	windowStart := now.Truncate(l.window)
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, windowStart.Unix())
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.clock.Now()
	redisKey := l.WindowKey(key, now)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("incrementing rate counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("setting rate counter expiry: %w", err)
		}
	}

	if count > l.limit {
		windowEnd := now.Truncate(l.window).Add(l.window)
		return false, windowEnd.Sub(now), nil
	}
	return true, 0, nil
}

// NewRedisClient parses redisURL and checks the server answers before returning.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

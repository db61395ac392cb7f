// Package ratelimit implements a fixed-window request limiter stored in Redis
// so that every server instance shares one budget per caller.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/salon-server/internal/config"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

const defaultPrefix = "salon:rl"

// Limiter is a fixed-window rate limiter backed by Redis.
type Limiter struct {
	rdb      redis.Scripter
	limit    int64
	window   time.Duration
	prefix   string
	failOpen bool
}

// New creates a Limiter. Non-positive limit or window fall back to 60 per minute.
func New(rdb redis.Scripter, cfg config.RateLimit) *Limiter {
	limit := int64(cfg.Limit)
	if limit <= 0 {
		limit = 60
	}
	window := cfg.Window
	if window < time.Millisecond {
		window = time.Minute
	}
	return &Limiter{rdb: rdb, limit: limit, window: window, prefix: defaultPrefix, failOpen: cfg.FailOpen}
}

// Allow counts one request for key in the current window. When Redis cannot
// be reached the error is returned together with the fail-open decision.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.incr(ctx, l.prefix+":"+strings.TrimSpace(key))
	if err != nil {
		return l.failOpen, fmt.Errorf("failed to count request: %w", err)
	}
	return count <= l.limit, nil
}

func (l *Limiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected script result type %T", res)
	}
}

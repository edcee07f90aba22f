package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Redis is a fixed-window limiter shared by every instance pointing at
// the same Redis. Keys are stored as "<prefix>:<key>" and expire with
// their window.
type Redis struct {
	rdb      redis.Cmdable
	prefix   string
	limit    int
	duration time.Duration
}

func NewRedis(rdb redis.Cmdable, prefix string, limit int, duration time.Duration) *Redis {
	return &Redis{rdb: rdb, prefix: strings.TrimSuffix(prefix, ":"), limit: limit, duration: duration}
}

func (l *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + ":" + key

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.duration)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(l.limit), nil
}

package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultWatchLimitKey is the redis key holding the watch limit minutes.
const DefaultWatchLimitKey = "esport-datanal:watch_limit_minutes"

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisWatchLimitStore shares the watch limit flag between api and scheduler
// processes.
type RedisWatchLimitStore struct {
	client redisKV
	key    string
}

func NewRedisWatchLimitStore(client redisKV, key string) *RedisWatchLimitStore {
	if key == "" {
		key = DefaultWatchLimitKey
	}
	return &RedisWatchLimitStore{client: client, key: key}
}

func (s *RedisWatchLimitStore) GetWatchLimit(ctx context.Context) (int, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s value %q: %w", s.key, raw, err)
	}
	return minutes, minutes > 0, nil
}

func (s *RedisWatchLimitStore) SaveWatchLimit(ctx context.Context, minutes int) error {
	if err := s.client.Set(ctx, s.key, strconv.Itoa(minutes), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

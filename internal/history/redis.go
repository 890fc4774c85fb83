package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/themobileprof/mindguard-be/internal/companion"
)

const keyPrefix = "mindguard:history:"

// RedisStore keeps each user's turns in a capped Redis list so the cache is
// shared across instances.
type RedisStore struct {
	client redis.Cmdable
	limit  int
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps an existing client. ttl of zero keeps lists forever.
func NewRedisStore(client redis.Cmdable, limit int, ttl time.Duration) *RedisStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &RedisStore{client: client, limit: limit, ttl: ttl}
}

// DialRedis parses a redis:// URL and verifies the connection with PING
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Append implements Store
func (s *RedisStore) Append(ctx context.Context, userID string, turns ...companion.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to encode turn: %w", err)
		}
		values = append(values, b)
	}

	key := keyPrefix + userID
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.LTrim(ctx, key, int64(-s.limit), -1)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// Recent implements Store
func (s *RedisStore) Recent(ctx context.Context, userID string, n int) ([]companion.Turn, error) {
	start := int64(0)
	if n > 0 {
		start = int64(-n)
	}

	raw, err := s.client.LRange(ctx, keyPrefix+userID, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	turns := make([]companion.Turn, 0, len(raw))
	for _, item := range raw {
		var t companion.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			// skip entries written by an incompatible version
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Clear implements Store
func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

package prefs

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/recipecost/pkg/errors"
)

// RedisKey is the key holding the theme.
const RedisKey = "recipecost:prefs:theme"

// RedisStore keeps the theme in a single Redis key without expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. The store takes ownership and
// closes it on Close.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Theme(ctx context.Context) (Theme, error) {
	v, err := s.client.Get(ctx, RedisKey).Result()
	if err == redis.Nil {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "redis get %s", RedisKey)
	}
	return orDefault(v), nil
}

func (s *RedisStore) SetTheme(ctx context.Context, t Theme) error {
	if err := validate(t); err != nil {
		return err
	}
	if err := s.client.Set(ctx, RedisKey, string(t), 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis set %s", RedisKey)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)

package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores slots as plain redis strings under
// "<prefix><scope>:<key>". Values never expire on their own.
type RedisBackend struct {
	client redis.Cmdable
	prefix string
}

// NewRedisBackend builds a backend over an existing client.
func NewRedisBackend(client redis.Cmdable, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

// Scope returns the store for id.
func (b *RedisBackend) Scope(id string) Store {
	return &redisStore{client: b.client, base: b.prefix + id + ":"}
}

type redisStore struct {
	client redis.Cmdable
	base   string
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.base+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.base+key, value, 0).Err()
}

func (s *redisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.base+key).Err()
}

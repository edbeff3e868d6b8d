package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisStore implements Store on a redis instance. Entries carry no TTL;
// this is a durable mirror, not a cache.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a redis-backed store and verifies connectivity.
func NewRedisStore(ctx context.Context, client *redis.Client, logger zerolog.Logger) (Store, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &redisStore{
		client: client,
		logger: logger.With().Str("store", "redis").Logger(),
	}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, stateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (s *redisStore) Set(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, stateKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func stateKey(key string) string {
	return fmt.Sprintf("kiosk:%s", key)
}

package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) Store {
	return &redisStore{
		client: client,
		key:    key,
	}
}

func (s *redisStore) Load(ctx context.Context) ([]byte, error) {
	document, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading snapshot from redis: %w", err)
	}

	return document, nil
}

func (s *redisStore) Save(ctx context.Context, document []byte) error {
	if err := s.client.Set(ctx, s.key, document, 0).Err(); err != nil {
		return fmt.Errorf("saving snapshot to redis: %w", err)
	}

	return nil
}

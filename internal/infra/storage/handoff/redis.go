package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранилище hand-off в Redis, записи истекают по TTL ключа
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает хранилище поверх готового клиента Redis
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	if err := s.client.Set(ctx, entryKey(sessionID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Put - redis set: %v", ErrExecQuery, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	if sessionID == "" {
		return "", ErrEmptySession
	}

	value, err := s.client.Get(ctx, entryKey(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - redis get: %v", ErrExecQuery, err)
	}
	return value, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID, key string) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	if err := s.client.Del(ctx, entryKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("%w: Clear - redis del: %v", ErrExecQuery, err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

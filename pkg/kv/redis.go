package kv

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a go-redis client.
// All state lives in Redis; the struct itself is stateless and safe to share.
type RedisStore struct {
	db redis.UniversalClient
}

// NewRedisStore wraps an existing Redis client. The caller owns the client's
// lifecycle unless Close is used.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{db: client}
}

// Get returns the raw value for key, mapping redis.Nil to ErrKeyNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	val, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

// Set stores the value. Zero ttl stores without expiration.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Set(ctx, key, value, ttl).Err()
}

// Delete removes the key. Absent keys are ignored, matching the DEL command.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Del(ctx, key).Err()
}

// Close terminates the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.db.Close()
}

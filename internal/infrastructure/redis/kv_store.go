package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// KVStore is a Redis-backed key-value store scoped to one owner by a
// key prefix. Guest stores carry a TTL so abandoned sessions expire on
// their own; a zero TTL means the keys persist.
type KVStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewKVStore creates a key-value store whose keys all live under the
// given prefix.
func NewKVStore(client *redis.Client, prefix string, ttl time.Duration) repository.KeyValueStore {
	return &KVStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// NewGuestKVStore creates the store backing one guest session.
func NewGuestKVStore(client *redis.Client, sessionID string, ttl time.Duration) repository.KeyValueStore {
	return NewKVStore(client, fmt.Sprintf("guest:%s:", sessionID), ttl)
}

// NewUserKVStore creates the preference store for an account. No TTL:
// preferences survive across sessions.
func NewUserKVStore(client *redis.Client, userID string) repository.KeyValueStore {
	return NewKVStore(client, fmt.Sprintf("user:%s:", userID), 0)
}

func (s *KVStore) key(key string) string {
	return s.prefix + key
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%w: key %s", errs.ErrNotFound, key)
		}
		return "", fmt.Errorf("%w: failed to get key: %v", errs.ErrStorage, err)
	}

	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to set key: %v", errs.ErrStorage, err)
	}

	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: failed to remove key: %v", errs.ErrStorage, err)
	}

	return nil
}

// Clear removes every key under the store's prefix.
func (s *KVStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("%w: failed to remove key: %v", errs.ErrStorage, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: failed to scan keys: %v", errs.ErrStorage, err)
	}

	return nil
}

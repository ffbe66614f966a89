package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    24 * time.Hour,
	}
}

// RedisStore keeps session values in Redis with a sliding expiry. Abandoned
// checkouts age out with the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisStore) Get(ctx context.Context, sessionID string, key Key, out interface{}) error {
	data, err := r.client.Get(ctx, storeKey(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}
	return decode(data, out)
}

func (r *RedisStore) Set(ctx context.Context, sessionID string, key Key, value interface{}) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, storeKey(sessionID, key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string, key Key) error {
	if err := r.client.Del(ctx, storeKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func storeKey(sessionID string, key Key) string {
	return fmt.Sprintf("storefront:%s:%s", sessionID, key)
}

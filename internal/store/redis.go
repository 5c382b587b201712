package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKV adapts a Redis client to the KV interface.  Each collection is one
// string value; reads and writes are single commands, so the collaborator
// keeps the synchronous get/set semantics the entity store expects.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an already-connected client.
func NewRedisKV(client *redis.Client) *RedisKV { return &RedisKV{client: client} }

// Get fetches the value stored under key.  A missing key is reported as
// found=false, not as an error.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Set stores value under key with no expiry; collections live forever.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

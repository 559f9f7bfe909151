package cart

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshot persists cart slots in redis so carts survive server
// restarts and load-balanced instances.
type RedisSnapshot struct {
	client *redis.Client
}

func NewRedisSnapshot(client *redis.Client) *RedisSnapshot {
	return &RedisSnapshot{client: client}
}

func (r *RedisSnapshot) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	return data, err
}

func (r *RedisSnapshot) Save(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *RedisSnapshot) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

package snapshots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/pkg/redis"
)

type redisClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SnapshotKey(name string) string
}

// RedisStore keeps the snapshot under a namespaced redis key. A zero TTL
// keeps it until overwritten.
type RedisStore struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisStore(client redisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.client.SnapshotKey(key))
	if errors.Is(err, redis.ErrNil) {
		return nil, cart.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get snapshot: %w", err)
	}
	return data, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.client.SnapshotKey(key), data, r.ttl); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

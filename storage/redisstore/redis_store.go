package redisstore

import (
	"context"

	"github.com/connecthub/connecthub-go/storage"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ storage.Store = (*RedisStore)(nil)

// RedisStore is a Redis-backed storage backend for shared or kiosk
// deployments where per-device files are not appropriate.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// New returns a RedisStore using the default "connecthub:" key prefix.
func New(client redis.UniversalClient) (*RedisStore, error) {
	return NewWithPrefix(client, "connecthub:")
}

// NewWithPrefix returns a RedisStore with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("[redisstore.NewWithPrefix] redis client is required")
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (rs *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := rs.client.Get(ctx, rs.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, errors.Wrap(err, "[RedisStore.Get] redis get")
	}
	return data, nil
}

func (rs *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := rs.client.Set(ctx, rs.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Set] redis set")
	}
	return nil
}

func (rs *RedisStore) Delete(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.prefix+key).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Delete] redis del")
	}
	return nil
}

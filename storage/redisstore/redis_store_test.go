package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/connecthub/connecthub-go/storage"
	"github.com/connecthub/connecthub-go/storage/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis returns a client against the Redis named by
// CONNECTHUB_TEST_REDIS_ADDR, skipping the test when none is configured.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("CONNECTHUB_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CONNECTHUB_TEST_REDIS_ADDR not set; skipping redis store tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewWithPrefix_RequiresClient(t *testing.T) {
	_, err := redisstore.NewWithPrefix(nil, "x:")
	require.Error(t, err)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	store, err := redisstore.NewWithPrefix(client, "connecthub-test:")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "connecthub.session", []byte(`{"auth_token":"abc123"}`)))
	t.Cleanup(func() { _ = store.Delete(ctx, "connecthub.session") })

	got, err := store.Get(ctx, "connecthub.session")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"auth_token":"abc123"}`), got)

	require.NoError(t, store.Delete(ctx, "connecthub.session"))
	_, err = store.Get(ctx, "connecthub.session")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)
}

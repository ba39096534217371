package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/afterschool-portal/storage"
	"github.com/jrsteele09/afterschool-portal/storage/redisstore"
	"github.com/jrsteele09/afterschool-portal/storage/storagetest"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// setupTestRedis connects to REDIS_TEST_ADDR, skipping when it is unset or unreachable.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore(t *testing.T) {
	client := setupTestRedis(t)
	storagetest.Run(t, func(t *testing.T) storage.Store {
		// A unique prefix isolates each subtest from the others.
		return redisstore.New(client, "test:"+uuid.NewString()+":")
	})
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	prefix := "test:" + uuid.NewString() + ":"
	s := redisstore.New(client, prefix)

	require.NoError(t, s.Set(ctx, "afterschool.authToken", "a.b.c"))
	raw, err := client.Get(ctx, prefix+"afterschool.authToken").Result()
	require.NoError(t, err)
	require.Equal(t, "a.b.c", raw)
	require.NoError(t, s.Remove(ctx, "afterschool.authToken"))
}

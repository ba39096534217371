package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/afterschool-portal/internal/bootstrap"
	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
	"github.com/stretchr/testify/require"
)

type storageConfig struct {
	config.Config
	backend string
	path    string
	url     string
}

func (c storageConfig) GetStorageBackend() string { return c.backend }
func (c storageConfig) GetSQLitePath() string     { return c.path }
func (c storageConfig) GetRedisURL() string       { return c.url }

func roundTrip(t *testing.T, cfg storageConfig) {
	t.Helper()
	ctx := context.Background()
	s, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, closeStore()) }()

	require.NoError(t, s.Set(ctx, "afterschool.authToken", "abc"))
	got, ok, err := s.Get(ctx, "afterschool.authToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", got)
}

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		roundTrip(t, storageConfig{Config: config.Defaults(), backend: config.StorageMemory})
	})

	t.Run("sqlite creates its directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "portal.db")
		roundTrip(t, storageConfig{Config: config.Defaults(), backend: config.StorageSQLite, path: path})
		_, err := os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("redis", func(t *testing.T) {
		addr := os.Getenv("REDIS_TEST_ADDR")
		if addr == "" {
			t.Skip("REDIS_TEST_ADDR not set")
		}
		roundTrip(t, storageConfig{Config: config.Defaults(), backend: config.StorageRedis, url: "redis://" + addr + "/15"})
	})

	t.Run("redis unreachable", func(t *testing.T) {
		_, _, err := bootstrap.OpenStore(context.Background(),
			storageConfig{Config: config.Defaults(), backend: config.StorageRedis, url: "redis://127.0.0.1:1/0"})
		require.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := bootstrap.OpenStore(context.Background(), storageConfig{Config: config.Defaults(), backend: "etcd"})
		require.True(t, errors.Is(err, errors.ErrUnsupported))
	})
}

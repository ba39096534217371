// Package bootstrap builds the long-lived pieces the commands share.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
	"github.com/jrsteele09/afterschool-portal/storage"
	"github.com/jrsteele09/afterschool-portal/storage/memstore"
	"github.com/jrsteele09/afterschool-portal/storage/redisstore"
	"github.com/jrsteele09/afterschool-portal/storage/sqlitestore"
	"github.com/rs/zerolog/log"
)

// CloseFunc releases a store opened by OpenStore.
type CloseFunc func() error

func noClose() error { return nil }

// OpenStore opens the storage backend cfg selects.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, CloseFunc, error) {
	switch backend := cfg.GetStorageBackend(); backend {
	case config.StorageMemory:
		log.Debug().Msg("using in-memory storage")
		return memstore.New(), noClose, nil

	case config.StorageSQLite:
		s, err := sqlitestore.Open(ctx, cfg.GetSQLitePath())
		if err != nil {
			return nil, nil, fmt.Errorf("[bootstrap OpenStore] sqlite: %w", err)
		}
		log.Debug().Str("path", cfg.GetSQLitePath()).Msg("using sqlite storage")
		return s, s.Close, nil

	case config.StorageRedis:
		s, err := redisstore.Dial(ctx, cfg.GetRedisURL(), cfg.GetRedisPrefix())
		if err != nil {
			return nil, nil, fmt.Errorf("[bootstrap OpenStore] redis: %w", err)
		}
		log.Debug().Str("prefix", cfg.GetRedisPrefix()).Msg("using redis storage")
		return s, s.Close, nil

	default:
		return nil, nil, errors.Wrapf(errors.ErrUnsupported, "[bootstrap OpenStore] storage backend %q", backend)
	}
}

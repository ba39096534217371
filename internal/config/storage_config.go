package config

import "strings"

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type Storage struct {
	Backend     string `env:"STORAGE_BACKEND"      envDefault:"sqlite"`
	SQLitePath  string `env:"STORAGE_SQLITE_PATH"  envDefault:"./data/portal.db"`
	RedisURL    string `env:"STORAGE_REDIS_URL"    envDefault:"redis://localhost:6379/0"`
	RedisPrefix string `env:"STORAGE_REDIS_PREFIX" envDefault:"portal:"`
}

var _ StorageConfig = Storage{}

func (s *Storage) sanitize() {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case StorageMemory, StorageSQLite, StorageRedis:
	default:
		s.Backend = StorageSQLite
	}
}

func (s Storage) GetStorageBackend() string {
	return s.Backend
}

func (s Storage) GetSQLitePath() string {
	return s.SQLitePath
}

func (s Storage) GetRedisURL() string {
	return s.RedisURL
}

func (s Storage) GetRedisPrefix() string {
	return s.RedisPrefix
}

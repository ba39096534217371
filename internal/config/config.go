package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config interface {
	EnvConfig
	CorsConfig
	ClientConfig
	RelayConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	IsDev() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// ClientConfig drives the API client, session store keys and the signup flow.
type ClientConfig interface {
	GetLocalRelayOrigin() string
	GetBackendOrigin() string
	GetLoopbackHosts() []string
	GetTokenKey() string
	GetUserKey() string
	GetRequestTimeout() time.Duration
	GetVerificationTTL() time.Duration
}

type RelayConfig interface {
	GetPort() string
	GetTargetOrigin() string
	GetSpoofOrigin() string
	GetSpoofReferer() string
	GetProxyPrefix() string
	GetInsecureSkipVerify() bool
}

type StorageConfig interface {
	GetStorageBackend() string
	GetSQLitePath() string
	GetRedisURL() string
	GetRedisPrefix() string
}

type mainConfig struct {
	EnvVars
	Cors
	Client
	Relay
	Storage
}

var _ Config = (*mainConfig)(nil)

// New loads an optional .env file and then parses the environment.
func New() (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("[config New] load .env: %w", err)
		}
		log.Debug().Msg("no .env file found, using process environment")
	}

	cfg := &mainConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("[config New] parse env: %w", err)
	}
	cfg.sanitize()
	return cfg, nil
}

// Defaults returns the configuration with every value at its default,
// ignoring the process environment.
func Defaults() Config {
	cfg := &mainConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	cfg.sanitize()
	return cfg
}

func (c *mainConfig) sanitize() {
	c.Relay.sanitize()
	c.Client.sanitize()
	c.Storage.sanitize()
}

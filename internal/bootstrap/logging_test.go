package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/afterschool-portal/internal/bootstrap"
	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

type envConfig struct {
	config.Config
	env string
}

func (c envConfig) GetEnv() string { return c.env }
func (c envConfig) IsDev() bool    { return c.env == "DEV" }

func TestConfigureLogging(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	t.Run("json outside dev", func(t *testing.T) {
		var buf bytes.Buffer
		bootstrap.ConfigureLogging(envConfig{Config: config.Defaults(), env: "PROD"}, &buf)
		log.Debug().Msg("hidden")
		log.Info().Str("path", "/api/auth/login").Msg("request")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		require.Equal(t, "request", line["message"])
		require.Equal(t, "/api/auth/login", line["path"])
	})

	t.Run("console in dev", func(t *testing.T) {
		var buf bytes.Buffer
		bootstrap.ConfigureLogging(envConfig{Config: config.Defaults(), env: "DEV"}, &buf)
		log.Debug().Msg("shown")
		require.Contains(t, buf.String(), "shown")
	})
}

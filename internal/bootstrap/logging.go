package bootstrap

import (
	"io"
	"os"
	"time"

	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigureLogging points the global logger at w: a coloured console in DEV,
// JSON lines elsewhere.
func ConfigureLogging(cfg config.EnvConfig, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDev() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
			Level(zerolog.DebugLevel).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

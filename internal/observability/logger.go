package observability

import (
	"io"
	"log/slog"

	"github.com/couchcryptid/weather-analysis/internal/config"
)

// NewLogger builds a slog.Logger from the config's level and format.
// Unknown values fall back to info-level text output, which is what the
// analyst-facing console run wants.
func NewLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Command weather runs the whole analysis batch: it loads data/raw_weather.csv
// relative to the detected project root, writes the cleaned CSV and the four
// chart images, and prints the statistics report. It takes no arguments; all
// paths follow the conventional layout.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/weather-analysis/internal/config"
	"github.com/couchcryptid/weather-analysis/internal/observability"
	"github.com/couchcryptid/weather-analysis/internal/pipeline"
)

func main() {
	root, err := config.DetectProjectRoot()
	if err != nil {
		slog.Error("failed to detect project root", "error", err)
		os.Exit(1)
	}

	cfg := config.Default(root)
	logger := observability.NewLogger(os.Stdout, cfg)
	metrics := observability.NewMetrics()

	logger.Info("project root detected", "root", root)

	p := pipeline.New(cfg, logger, metrics, nil, os.Stdout)
	if err := p.Run(); err != nil {
		logger.Error("analysis run failed", "error", err)
		fmt.Fprintf(os.Stderr, "Make sure the raw dataset is placed at: %s\n", cfg.RawCSV)
		os.Exit(1)
	}
}

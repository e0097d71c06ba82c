// Package pipeline sequences the batch run: load, clean, persist, report,
// render. Strictly synchronous — each stage completes before the next starts,
// and a stage error aborts the run.
package pipeline

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-analysis/internal/chart"
	"github.com/couchcryptid/weather-analysis/internal/config"
	"github.com/couchcryptid/weather-analysis/internal/dataset"
	"github.com/couchcryptid/weather-analysis/internal/observability"
	"github.com/couchcryptid/weather-analysis/internal/stats"
)

// Pipeline owns one batch run's collaborators.
type Pipeline struct {
	cfg     *config.Config
	cleaner *dataset.Cleaner
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	out     io.Writer // statistics report destination
}

// New creates a Pipeline. A nil clock means real time; a nil out means stdout.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, out io.Writer) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{
		cfg:     cfg,
		cleaner: dataset.NewCleaner(logger),
		logger:  logger,
		metrics: metrics,
		clock:   clock,
		out:     out,
	}
}

// Run executes the whole batch: ensure directories, load the raw dataset,
// clean it, persist the cleaned CSV, report statistics, and render the four
// charts in fixed order. Charts whose required columns are absent are
// skipped with a warning; anything else is fatal.
func (p *Pipeline) Run() error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	if err := p.cfg.EnsureDirs(); err != nil {
		return err
	}
	p.logger.Info("looking for raw dataset", "path", p.cfg.RawCSV)

	table, err := p.loadAndClean()
	if err != nil {
		return err
	}

	if err := p.persist(table); err != nil {
		return err
	}

	p.reportStatistics(table)

	if err := p.renderCharts(table); err != nil {
		return err
	}

	p.metrics.Dump(p.logger)
	p.logger.Info("run complete", "data_dir", p.cfg.DataDir, "images_dir", p.cfg.ImagesDir)
	return nil
}

func (p *Pipeline) loadAndClean() (dataset.Table, error) {
	start := p.clock.Now()
	df, err := dataset.Load(p.cfg.RawCSV, p.logger)
	if err != nil {
		return dataset.Table{}, err
	}
	p.observeStage("load", start)
	p.metrics.RowsLoaded.Add(float64(df.Nrow()))
	p.logger.Info("loaded raw dataset", "rows", df.Nrow())

	start = p.clock.Now()
	table, report := p.cleaner.Clean(df)
	p.observeStage("clean", start)

	p.metrics.RowsDropped.Add(float64(report.DroppedRows))
	for col, n := range report.Imputed {
		p.metrics.ValuesImputed.WithLabelValues(col).Add(float64(n))
	}
	p.metrics.ColumnsDropped.Add(float64(len(report.DroppedColumns)))

	p.logger.Info("cleaned dataset",
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"rows_dropped", report.DroppedRows,
		"columns", table.PresentColumns(),
	)
	return table, nil
}

func (p *Pipeline) persist(table dataset.Table) error {
	start := p.clock.Now()
	if err := dataset.WriteCSV(table, p.cfg.CleanedCSV); err != nil {
		return err
	}
	p.observeStage("persist", start)
	p.logger.Info("saved cleaned dataset", "path", p.cfg.CleanedCSV)
	return nil
}

// reportStatistics computes the derived views and prints them. They are
// reporting output only; the charts read the cleaned table directly.
func (p *Pipeline) reportStatistics(table dataset.Table) {
	start := p.clock.Now()

	writeDescribe(p.out, stats.Describe(table))
	writeAggregates(p.out, "Monthly statistics", stats.Resample(table, stats.Monthly))
	writeAggregates(p.out, "Yearly statistics", stats.Resample(table, stats.Yearly))

	if means := stats.SeasonMeans(table); means != nil {
		writeSeasonMeans(p.out, means)
	} else {
		p.logger.Warn("season-wise averages skipped")
	}

	p.observeStage("stats", start)
}

func (p *Pipeline) renderCharts(table dataset.Table) error {
	renders := []struct {
		name string
		path string
		fn   func(dataset.Table, string) error
	}{
		{"daily temperature line", p.cfg.DailyTemperaturePNG, chart.DailyTemperature},
		{"monthly rainfall bars", p.cfg.MonthlyRainfallPNG, chart.MonthlyRainfall},
		{"humidity vs temperature scatter", p.cfg.HumidityTemperaturePNG, chart.HumidityVsTemperature},
		{"combined overview", p.cfg.OverviewPNG, chart.Overview},
	}

	// A fully-degraded dataset (every row dropped) still completes the run;
	// there is just nothing to draw.
	if table.Len() == 0 {
		p.metrics.ChartsSkipped.Add(float64(len(renders)))
		p.logger.Warn("skipping all charts, cleaned table has no rows")
		return nil
	}

	start := p.clock.Now()
	for _, r := range renders {
		err := r.fn(table, r.path)
		if errors.Is(err, chart.ErrColumnAbsent) {
			p.metrics.ChartsSkipped.Inc()
			p.logger.Warn("skipping chart, required column absent", "chart", r.name, "error", err)
			continue
		}
		if err != nil {
			return err
		}
		p.metrics.ChartsRendered.Inc()
		p.logger.Info("saved chart", "chart", r.name, "path", r.path)
	}
	p.observeStage("charts", start)
	return nil
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(p.clock.Since(start).Seconds())
}

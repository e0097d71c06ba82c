package pipeline

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-analysis/internal/config"
	"github.com/couchcryptid/weather-analysis/internal/dataset"
	"github.com/couchcryptid/weather-analysis/internal/observability"
)

const fullRawCSV = `Date,Temperature,Rainfall,Humidity
2024-01-02,NaN,5,NaN
2024-01-01,10,NaN,80
bad-date,99,99,99
2024-02-10,20,0,60
`

func newTestPipeline(t *testing.T, rawCSV string) (*Pipeline, *config.Config, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default(t.TempDir())

	if rawCSV != "" {
		require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))
		require.NoError(t, os.WriteFile(cfg.RawCSV, []byte(rawCSV), 0o600))
	}

	out := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(cfg, logger, observability.NewMetrics(), clockwork.NewFakeClock(), out)
	return p, cfg, out
}

func TestRun_HappyPath(t *testing.T) {
	p, cfg, out := newTestPipeline(t, fullRawCSV)

	require.NoError(t, p.Run())

	data, err := os.ReadFile(cfg.CleanedCSV)
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Temperature,Rainfall,Humidity\n"+
			"2024-01-01,10,0,80\n"+
			"2024-01-02,15,5,70\n"+
			"2024-02-10,20,0,60\n",
		string(data))

	for _, img := range []string{
		cfg.DailyTemperaturePNG,
		cfg.MonthlyRainfallPNG,
		cfg.HumidityTemperaturePNG,
		cfg.OverviewPNG,
	} {
		info, err := os.Stat(img)
		require.NoError(t, err, "expected chart %s", img)
		assert.Positive(t, info.Size())
	}

	report := out.String()
	assert.Contains(t, report, "Descriptive statistics")
	assert.Contains(t, report, "Monthly statistics")
	assert.Contains(t, report, "Yearly statistics")
	assert.Contains(t, report, "Season-wise averages")
	assert.Contains(t, report, "Winter")
}

func TestRun_MissingInputFile(t *testing.T) {
	p, _, _ := newTestPipeline(t, "")

	err := p.Run()
	require.ErrorIs(t, err, dataset.ErrMissingFile)
}

func TestRun_MissingDateColumn(t *testing.T) {
	p, _, _ := newTestPipeline(t, "Temperature,Rainfall\n10,0\n")

	err := p.Run()
	require.ErrorIs(t, err, dataset.ErrMissingDateColumn)
}

func TestRun_MissingRainfallColumn(t *testing.T) {
	raw := strings.Join([]string{
		"Date,Temperature,Humidity",
		"2024-01-01,10,80",
		"2024-01-02,12,70",
		"2024-02-01,15,60",
	}, "\n") + "\n"
	p, cfg, out := newTestPipeline(t, raw)

	require.NoError(t, p.Run(), "a missing rainfall column must not fail the run")

	// Cleaned output and the rainfall-free charts still appear.
	_, err := os.Stat(cfg.CleanedCSV)
	require.NoError(t, err)
	_, err = os.Stat(cfg.DailyTemperaturePNG)
	require.NoError(t, err)
	_, err = os.Stat(cfg.HumidityTemperaturePNG)
	require.NoError(t, err)

	// Rainfall-dependent charts are skipped.
	_, err = os.Stat(cfg.MonthlyRainfallPNG)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(cfg.OverviewPNG)
	assert.True(t, os.IsNotExist(err))

	// Season-wise averages need all three measurements.
	assert.NotContains(t, out.String(), "Season-wise averages")
}

func TestRun_AllDatesUnparseable(t *testing.T) {
	raw := strings.Join([]string{
		"Date,Temperature,Rainfall,Humidity",
		"bad,10,0,80",
		"worse,12,1,70",
	}, "\n") + "\n"
	p, cfg, out := newTestPipeline(t, raw)

	require.NoError(t, p.Run(), "a fully-degraded dataset must complete with warnings, not fail")

	// The cleaned CSV still exists, header only.
	data, err := os.ReadFile(cfg.CleanedCSV)
	require.NoError(t, err)
	assert.Equal(t, "Date,Temperature,Rainfall,Humidity\n", string(data))

	// Nothing to draw: every chart is skipped.
	for _, img := range []string{
		cfg.DailyTemperaturePNG,
		cfg.MonthlyRainfallPNG,
		cfg.HumidityTemperaturePNG,
		cfg.OverviewPNG,
	} {
		_, err := os.Stat(img)
		assert.True(t, os.IsNotExist(err), "chart %s should not be rendered", img)
	}

	// The statistics report still prints, with empty aggregates.
	assert.Contains(t, out.String(), "Descriptive statistics")
	assert.NotContains(t, out.String(), "Season-wise averages")
}

func TestRun_Deterministic(t *testing.T) {
	p1, cfg1, _ := newTestPipeline(t, fullRawCSV)
	p2, cfg2, _ := newTestPipeline(t, fullRawCSV)

	require.NoError(t, p1.Run())
	require.NoError(t, p2.Run())

	a, err := os.ReadFile(cfg1.CleanedCSV)
	require.NoError(t, err)
	b, err := os.ReadFile(cfg2.CleanedCSV)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same raw input must produce a byte-identical cleaned CSV")
}

func TestRun_CreatesDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))
	require.NoError(t, os.WriteFile(cfg.RawCSV, []byte(fullRawCSV), 0o600))

	p := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetrics(), nil, nil)
	require.NoError(t, p.Run())

	for _, dir := range []string{cfg.ImagesDir, cfg.ReportsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	_, err := os.Stat(filepath.Join(cfg.ImagesDir, "combined_plots.png"))
	require.NoError(t, err)
}

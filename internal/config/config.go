package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all pipeline settings. Paths are explicit values passed into
// the pipeline rather than package-level constants so a whole run can be
// pointed at a temporary directory under test.
type Config struct {
	// Directory layout.
	DataDir    string
	ImagesDir  string
	ReportsDir string

	// Flat files.
	RawCSV     string
	CleanedCSV string

	// Chart image outputs.
	DailyTemperaturePNG    string
	MonthlyRainfallPNG     string
	HumidityTemperaturePNG string
	OverviewPNG            string

	LogLevel  string
	LogFormat string
}

// Default builds the conventional layout rooted at the given project
// directory: data/ for CSVs, images/ for charts, reports/ reserved for
// text reports.
func Default(root string) *Config {
	dataDir := filepath.Join(root, "data")
	imagesDir := filepath.Join(root, "images")

	return &Config{
		DataDir:    dataDir,
		ImagesDir:  imagesDir,
		ReportsDir: filepath.Join(root, "reports"),

		RawCSV:     filepath.Join(dataDir, "raw_weather.csv"),
		CleanedCSV: filepath.Join(dataDir, "cleaned_weather.csv"),

		DailyTemperaturePNG:    filepath.Join(imagesDir, "daily_temperature.png"),
		MonthlyRainfallPNG:     filepath.Join(imagesDir, "monthly_rainfall.png"),
		HumidityTemperaturePNG: filepath.Join(imagesDir, "humidity_vs_temperature.png"),
		OverviewPNG:            filepath.Join(imagesDir, "combined_plots.png"),

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Validate checks that every path field is populated.
func (c *Config) Validate() error {
	paths := map[string]string{
		"DataDir":                c.DataDir,
		"ImagesDir":              c.ImagesDir,
		"ReportsDir":             c.ReportsDir,
		"RawCSV":                 c.RawCSV,
		"CleanedCSV":             c.CleanedCSV,
		"DailyTemperaturePNG":    c.DailyTemperaturePNG,
		"MonthlyRainfallPNG":     c.MonthlyRainfallPNG,
		"HumidityTemperaturePNG": c.HumidityTemperaturePNG,
		"OverviewPNG":            c.OverviewPNG,
	}
	for name, p := range paths {
		if p == "" {
			return fmt.Errorf("config: %s must not be empty", name)
		}
	}
	return nil
}

// EnsureDirs creates the data, images, and reports directories if absent.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.ImagesDir, c.ReportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DetectProjectRoot returns the directory containing the running executable,
// falling back to the working directory when the executable path cannot be
// resolved. Note that under `go run` the executable lives in the build
// cache, so the analysis binary is expected to be built into (or copied to)
// the project root it should operate on.
func DetectProjectRoot() (string, error) {
	exe, err := os.Executable()
	if err == nil {
		if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil {
			return filepath.Dir(resolved), nil
		}
		return filepath.Dir(exe), nil
	}

	wd, werr := os.Getwd()
	if werr != nil {
		return "", errors.Join(err, werr)
	}
	return wd, nil
}

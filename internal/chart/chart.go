// Package chart renders the four analysis images. Every render function is a
// pure function of (table, output path): it builds its own plot, writes one
// PNG, and holds no state between calls.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/weather-analysis/internal/dataset"
	"github.com/couchcryptid/weather-analysis/internal/stats"
)

// ErrColumnAbsent means a chart's required measurement column is not in the
// table. The runner treats it as a skip, not a failure.
var ErrColumnAbsent = errors.New("required column absent from table")

var (
	lineColor = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
	barColor  = color.NRGBA{R: 64, G: 130, B: 196, A: 255}
	dotColor  = color.NRGBA{R: 31, G: 119, B: 180, A: 180} // transparency reveals density
)

// DailyTemperature renders the date/temperature line chart.
func DailyTemperature(t dataset.Table, path string) error {
	p, err := temperatureLinePlot(t, "Daily Temperature Trend")
	if err != nil {
		return err
	}
	p.X.Label.Text = "Date"

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save daily temperature chart: %w", err)
	}
	return nil
}

// MonthlyRainfall renders one bar per month-end rainfall total.
func MonthlyRainfall(t dataset.Table, path string) error {
	p, err := rainfallBarPlot(t, "Monthly Rainfall Totals")
	if err != nil {
		return err
	}
	p.X.Label.Text = "Month"

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save monthly rainfall chart: %w", err)
	}
	return nil
}

// HumidityVsTemperature renders the scatter of humidity against temperature,
// one semi-transparent point per observation.
func HumidityVsTemperature(t dataset.Table, path string) error {
	if err := requireColumns(t, dataset.ColTemperature, dataset.ColHumidity); err != nil {
		return err
	}

	pts := make(plotter.XYs, t.Len())
	for i := range pts {
		pts[i].X = t.Temperature[i]
		pts[i].Y = t.Humidity[i]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build humidity scatter: %w", err)
	}
	scatter.GlyphStyle.Color = dotColor
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p := plot.New()
	p.Title.Text = "Humidity vs Temperature"
	p.X.Label.Text = "Temperature (°C)"
	p.Y.Label.Text = "Humidity (%)"
	p.Add(scatter, plotter.NewGrid())

	if err := p.Save(7*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save humidity scatter: %w", err)
	}
	return nil
}

// Overview renders the two-panel figure: daily temperature line above the
// monthly rainfall bars, on one PNG canvas.
func Overview(t dataset.Table, path string) error {
	top, err := temperatureLinePlot(t, "Daily Temperature")
	if err != nil {
		return err
	}
	bottom, err := rainfallBarPlot(t, "Monthly Rainfall")
	if err != nil {
		return err
	}

	img := vgimg.New(10*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter * 4}

	panels := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(panels, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create overview chart: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("save overview chart: %w", err)
	}
	return nil
}

// temperatureLinePlot builds the shared temperature-over-time panel.
func temperatureLinePlot(t dataset.Table, title string) (*plot.Plot, error) {
	if err := requireColumns(t, dataset.ColTemperature); err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, t.Len())
	for i := range pts {
		pts[i].X = float64(t.Dates[i].Unix())
		pts[i].Y = t.Temperature[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("build temperature line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Color = lineColor

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Temperature (°C)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(line, plotter.NewGrid())
	return p, nil
}

// rainfallBarPlot builds the shared monthly rainfall panel from the single
// shared aggregation in the stats package.
func rainfallBarPlot(t dataset.Table, title string) (*plot.Plot, error) {
	if err := requireColumns(t, dataset.ColRainfall); err != nil {
		return nil, err
	}

	totals := stats.MonthlyRainfallTotals(t)
	values := make(plotter.Values, len(totals))
	labels := make([]string, len(totals))
	for i, mt := range totals {
		values[i] = mt.Total
		labels[i] = mt.MonthEnd.Format("2006-01")
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("build rainfall bars: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Rainfall (mm)"
	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)
	return p, nil
}

func requireColumns(t dataset.Table, cols ...string) error {
	for _, col := range cols {
		if !t.Has(col) {
			return fmt.Errorf("%w: %s", ErrColumnAbsent, col)
		}
	}
	return nil
}

package dataset

import (
	"log/slog"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// dateLayouts are the accepted Date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// Report summarizes what the cleaner did to one dataset.
type Report struct {
	RowsIn      int
	RowsOut     int
	DroppedRows int // rows removed for unparseable dates

	Imputed        map[string]int // missing values filled, by column
	DroppedColumns []string       // measurement columns with no parseable values at all
}

// Cleaner turns a raw string-typed dataframe into a typed, NaN-free,
// date-sorted Table.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a Cleaner that reports non-fatal findings on logger.
func NewCleaner(logger *slog.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean applies the cleaning steps in order: parse dates and drop rows where
// parsing fails, coerce measurement columns to float64, impute missing values
// per column policy, project onto the recognized columns, and sort ascending
// by date. Cleaning never fails; bad data only shrinks the output.
func (c *Cleaner) Clean(df dataframe.DataFrame) (Table, Report) {
	report := Report{
		RowsIn:  df.Nrow(),
		Imputed: map[string]int{},
	}

	dates, keep := c.parseDates(df, &report)

	table := Table{Dates: dates}
	names := df.Names()
	for _, col := range MeasurementColumns {
		if !slices.Contains(names, col) {
			continue
		}
		values := coerceColumn(df, col, keep)
		values = c.impute(col, values, &report)
		if values == nil {
			report.DroppedColumns = append(report.DroppedColumns, col)
			continue
		}
		table.setColumn(col, values)
	}

	sortByDate(&table)
	report.RowsOut = table.Len()
	return table, report
}

// parseDates parses the Date column, returning the parsed dates of the kept
// rows and the original indices of those rows.
func (c *Cleaner) parseDates(df dataframe.DataFrame, report *Report) ([]time.Time, []int) {
	records := df.Col(ColDate).Records()

	dates := make([]time.Time, 0, len(records))
	keep := make([]int, 0, len(records))
	for i, rec := range records {
		d, ok := ParseDate(rec)
		if !ok {
			report.DroppedRows++
			continue
		}
		dates = append(dates, d)
		keep = append(keep, i)
	}

	if report.DroppedRows > 0 {
		c.logger.Warn("dropping rows with unparseable dates",
			"dropped", report.DroppedRows, "total", len(records))
	}
	return dates, keep
}

// impute fills NaNs according to the per-column policy, or returns nil when
// the column has no values to derive a fill from.
func (c *Cleaner) impute(col string, values []float64, report *Report) []float64 {
	available := withoutNaN(values)
	missing := len(values) - len(available)

	if len(values) > 0 && len(available) == 0 && col != ColRainfall {
		// Nothing to average; fabricating a fill would invent data.
		c.logger.Warn("measurement column has no usable values, dropping it", "column", col)
		return nil
	}

	if missing == 0 {
		return values
	}

	var fill float64
	switch col {
	case ColTemperature:
		fill = stat.Mean(available, nil)
	case ColRainfall:
		fill = 0
	case ColHumidity:
		fill = median(available)
	}

	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = fill
		}
	}
	report.Imputed[col] = missing
	c.logger.Warn("imputed missing values", "column", col, "count", missing, "fill", fill)
	return values
}

// ParseDate tries each accepted layout, normalizing to midnight UTC.
// Reports false for anything unparseable, including the empty string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// coerceColumn parses the kept rows of a raw column as float64, NaN on failure.
func coerceColumn(df dataframe.DataFrame, col string, keep []int) []float64 {
	records := df.Col(col).Records()
	values := make([]float64, len(keep))
	for i, idx := range keep {
		values[i] = parseFloatOrNaN(records[idx])
	}
	return values
}

func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NA") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func withoutNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// median returns the middle value of values (mean of the two middles for an
// even count). values must be non-empty and NaN-free.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// sortByDate stable-sorts all table columns by ascending date.
func sortByDate(t *Table) {
	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.Dates[order[a]].Before(t.Dates[order[b]])
	})

	t.Dates = permute(t.Dates, order)
	t.Temperature = permute(t.Temperature, order)
	t.Rainfall = permute(t.Rainfall, order)
	t.Humidity = permute(t.Humidity, order)
}

func permute[S ~[]E, E any](s S, order []int) S {
	if s == nil {
		return nil
	}
	out := make(S, len(s))
	for i, idx := range order {
		out[i] = s[idx]
	}
	return out
}

func (t *Table) setColumn(name string, values []float64) {
	switch name {
	case ColTemperature:
		t.Temperature = values
	case ColRainfall:
		t.Rainfall = values
	case ColHumidity:
		t.Humidity = values
	}
}

// Package stats computes the derived, read-only views over a cleaned
// observation table: whole-table descriptive statistics, month-end and
// year-end aggregates, monthly rainfall totals, and season attribution.
package stats

import (
	"math"
	"slices"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/weather-analysis/internal/dataset"
)

// Summary holds descriptive statistics for one measurement column over the
// whole table.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64 // sample standard deviation; NaN when Count < 2
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe computes a Summary per present measurement column, in canonical
// column order. An empty table yields summaries with Count 0 and NaN moments.
func Describe(t dataset.Table) []Summary {
	var out []Summary
	for _, col := range t.PresentColumns() {
		out = append(out, describeColumn(col, t.Column(col)))
	}
	return out
}

func describeColumn(name string, values []float64) Summary {
	s := Summary{Column: name, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s.Mean = stat.Mean(values, nil)
	s.Std = stat.StdDev(values, nil)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q1 = quantile(0.25, sorted)
	s.Median = quantile(0.5, sorted)
	s.Q3 = quantile(0.75, sorted)
	return s
}

// quantile linearly interpolates between order statistics. sorted must be
// ascending and non-empty.
func quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Period selects the resampling granularity.
type Period int

const (
	Monthly Period = iota
	Yearly
)

// ColumnAggregate holds the per-period statistics for one column.
type ColumnAggregate struct {
	Column string
	Mean   float64
	Min    float64
	Max    float64
	Std    float64 // NaN for single-observation periods
}

// Aggregate holds one calendar period's statistics. PeriodEnd is the last
// calendar day of the month or year, midnight UTC.
type Aggregate struct {
	PeriodEnd time.Time
	Columns   []ColumnAggregate
}

// Resample groups rows by calendar period and aggregates every present
// measurement column. Periods with no rows are simply absent. Output is
// sorted ascending by period end.
func Resample(t dataset.Table, p Period) []Aggregate {
	groups := map[time.Time][]int{}
	for i, d := range t.Dates {
		end := periodEnd(d, p)
		groups[end] = append(groups[end], i)
	}

	ends := make([]time.Time, 0, len(groups))
	for end := range groups {
		ends = append(ends, end)
	}
	sort.Slice(ends, func(a, b int) bool { return ends[a].Before(ends[b]) })

	cols := t.PresentColumns()
	out := make([]Aggregate, 0, len(ends))
	for _, end := range ends {
		agg := Aggregate{PeriodEnd: end}
		for _, col := range cols {
			values := gather(t.Column(col), groups[end])
			agg.Columns = append(agg.Columns, ColumnAggregate{
				Column: col,
				Mean:   stat.Mean(values, nil),
				Min:    floats.Min(values),
				Max:    floats.Max(values),
				Std:    stat.StdDev(values, nil),
			})
		}
		out = append(out, agg)
	}
	return out
}

// MonthlyRainfall is one month-end rainfall total.
type MonthlyRainfall struct {
	MonthEnd time.Time
	Total    float64
}

// MonthlyRainfallTotals sums Rainfall per calendar month. This is the single
// rainfall aggregation shared by the rainfall bar chart and the overview
// chart. Returns nil when the Rainfall column is absent.
func MonthlyRainfallTotals(t dataset.Table) []MonthlyRainfall {
	if !t.Has(dataset.ColRainfall) {
		return nil
	}

	totals := map[time.Time]float64{}
	for i, d := range t.Dates {
		totals[periodEnd(d, Monthly)] += t.Rainfall[i]
	}

	out := make([]MonthlyRainfall, 0, len(totals))
	for end, total := range totals {
		out = append(out, MonthlyRainfall{MonthEnd: end, Total: total})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].MonthEnd.Before(out[b].MonthEnd) })
	return out
}

// periodEnd maps a date to the last day of its calendar month or year.
func periodEnd(d time.Time, p Period) time.Time {
	switch p {
	case Yearly:
		return time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		// Day 0 of the next month normalizes to this month's last day.
		return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	}
}

func gather(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}

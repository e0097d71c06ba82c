package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-analysis/internal/dataset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDescribe(t *testing.T) {
	table := dataset.Table{
		Dates: []time.Time{
			day(2024, time.January, 1),
			day(2024, time.January, 2),
			day(2024, time.January, 3),
			day(2024, time.January, 4),
		},
		Temperature: []float64{10, 20, 30, 40},
	}

	summaries := Describe(table)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, dataset.ColTemperature, s.Column)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 25, s.Mean, 1e-9)
	assert.InDelta(t, 12.9099444874, s.Std, 1e-9)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 40.0, s.Max)
	assert.InDelta(t, 17.5, s.Q1, 1e-9)
	assert.InDelta(t, 25, s.Median, 1e-9)
	assert.InDelta(t, 32.5, s.Q3, 1e-9)
}

func TestDescribe_ColumnOrderFollowsCanonical(t *testing.T) {
	table := dataset.Table{
		Dates:       []time.Time{day(2024, time.January, 1)},
		Temperature: []float64{10},
		Rainfall:    []float64{0},
		Humidity:    []float64{80},
	}

	summaries := Describe(table)
	require.Len(t, summaries, 3)
	assert.Equal(t, dataset.ColTemperature, summaries[0].Column)
	assert.Equal(t, dataset.ColRainfall, summaries[1].Column)
	assert.Equal(t, dataset.ColHumidity, summaries[2].Column)
}

func TestResample_Monthly(t *testing.T) {
	table := dataset.Table{
		Dates: []time.Time{
			day(2024, time.January, 1),
			day(2024, time.January, 15),
			day(2024, time.February, 10),
			day(2024, time.April, 2), // March has no rows
		},
		Temperature: []float64{10, 20, 5, 30},
	}

	aggs := Resample(table, Monthly)
	require.Len(t, aggs, 3, "empty periods must be absent, not zero-filled")

	assert.Equal(t, day(2024, time.January, 31), aggs[0].PeriodEnd)
	assert.Equal(t, day(2024, time.February, 29), aggs[1].PeriodEnd)
	assert.Equal(t, day(2024, time.April, 30), aggs[2].PeriodEnd)

	jan := aggs[0].Columns[0]
	assert.Equal(t, dataset.ColTemperature, jan.Column)
	assert.InDelta(t, 15, jan.Mean, 1e-9)
	assert.Equal(t, 10.0, jan.Min)
	assert.Equal(t, 20.0, jan.Max)
	assert.InDelta(t, math.Sqrt2*5, jan.Std, 1e-9)

	// A single-observation period has an undefined sample deviation.
	feb := aggs[1].Columns[0]
	assert.True(t, math.IsNaN(feb.Std))
}

func TestResample_Yearly(t *testing.T) {
	table := dataset.Table{
		Dates: []time.Time{
			day(2023, time.June, 1),
			day(2023, time.July, 1),
			day(2024, time.June, 1),
		},
		Rainfall: []float64{10, 30, 7},
	}

	aggs := Resample(table, Yearly)
	require.Len(t, aggs, 2)

	assert.Equal(t, day(2023, time.December, 31), aggs[0].PeriodEnd)
	assert.Equal(t, day(2024, time.December, 31), aggs[1].PeriodEnd)
	assert.InDelta(t, 20, aggs[0].Columns[0].Mean, 1e-9)
	assert.InDelta(t, 7, aggs[1].Columns[0].Mean, 1e-9)
}

func TestMonthlyRainfallTotals(t *testing.T) {
	t.Run("sums per calendar month", func(t *testing.T) {
		table := dataset.Table{
			Dates: []time.Time{
				day(2024, time.January, 1),
				day(2024, time.January, 20),
				day(2024, time.March, 3),
			},
			Rainfall: []float64{1.5, 2.5, 10},
		}

		totals := MonthlyRainfallTotals(table)
		require.Len(t, totals, 2)
		assert.Equal(t, day(2024, time.January, 31), totals[0].MonthEnd)
		assert.InDelta(t, 4, totals[0].Total, 1e-9)
		assert.Equal(t, day(2024, time.March, 31), totals[1].MonthEnd)
		assert.InDelta(t, 10, totals[1].Total, 1e-9)
	})

	t.Run("nil when rainfall absent", func(t *testing.T) {
		table := dataset.Table{
			Dates:       []time.Time{day(2024, time.January, 1)},
			Temperature: []float64{10},
		}
		assert.Nil(t, MonthlyRainfallTotals(table))
	})
}

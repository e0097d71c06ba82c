package stats

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/weather-analysis/internal/dataset"
)

// Season is the categorical label derived from a row's month.
type Season string

const (
	Winter  Season = "Winter"
	Summer  Season = "Summer"
	Monsoon Season = "Monsoon"
	Autumn  Season = "Autumn"
)

// SeasonOrder fixes the reporting order of the four seasons.
var SeasonOrder = []Season{Winter, Summer, Monsoon, Autumn}

// seasonByMonth is the domain's season calendar. It is deliberately not the
// conventional meteorological mapping: March–May is the hot "Summer" and
// June–August the "Monsoon", as used in monsoon-climate reporting.
var seasonByMonth = map[time.Month]Season{
	time.December: Winter, time.January: Winter, time.February: Winter,
	time.March: Summer, time.April: Summer, time.May: Summer,
	time.June: Monsoon, time.July: Monsoon, time.August: Monsoon,
	time.September: Autumn, time.October: Autumn, time.November: Autumn,
}

// SeasonForMonth returns the season label for a calendar month.
func SeasonForMonth(m time.Month) Season {
	return seasonByMonth[m]
}

// Seasons labels every row of the table with its season. The caller decides
// whether augmentation applies (it is only reported when all three
// measurement columns are present).
func Seasons(t dataset.Table) []Season {
	out := make([]Season, t.Len())
	for i, d := range t.Dates {
		out[i] = SeasonForMonth(d.Month())
	}
	return out
}

// SeasonMean holds the per-season averages of the three measurements.
type SeasonMean struct {
	Season      Season
	Temperature float64
	Rainfall    float64
	Humidity    float64
}

// SeasonMeans averages Temperature, Rainfall, and Humidity per season, in
// SeasonOrder, omitting seasons with no rows. Returns nil unless all three
// measurement columns are present.
func SeasonMeans(t dataset.Table) []SeasonMean {
	if !t.HasAllMeasurements() {
		return nil
	}

	rows := map[Season][]int{}
	seasons := Seasons(t)
	for i, s := range seasons {
		rows[s] = append(rows[s], i)
	}

	var out []SeasonMean
	for _, s := range SeasonOrder {
		idx := rows[s]
		if len(idx) == 0 {
			continue
		}
		out = append(out, SeasonMean{
			Season:      s,
			Temperature: stat.Mean(gather(t.Temperature, idx), nil),
			Rainfall:    stat.Mean(gather(t.Rainfall, idx), nil),
			Humidity:    stat.Mean(gather(t.Humidity, idx), nil),
		})
	}
	return out
}

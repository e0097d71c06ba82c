// Command gendata generates a synthetic raw weather CSV for local runs and
// test fixtures. The output follows a seasonal climate curve and injects the
// same kinds of dirt the cleaner must survive: missing measurement cells and
// malformed dates. Output is reproducible for a given seed.
//
// Usage:
//
//	go run ./cmd/gendata -out data/raw_weather.csv -days 730 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/raw_weather.csv", "output path for the raw CSV")
	days := flag.Int("days", 730, "number of daily observations")
	start := flag.String("start", "2023-01-01", "first observation date (2006-01-02 form)")
	seed := flag.Int64("seed", 42, "random seed")
	dirty := flag.Float64("dirty", 0.05, "fraction of cells blanked out per measurement column")
	badDates := flag.Int("bad-dates", 3, "number of rows given malformed dates")
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	if *days <= 0 {
		return fmt.Errorf("-days must be positive")
	}

	rng := rand.New(rand.NewSource(*seed))
	rows := generate(rng, startDate, *days, *dirty, *badDates)

	if err := writeCSV(*out, rows); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	log.Printf("wrote %d rows to %s", len(rows), *out)
	return nil
}

// generate builds one row per day with a seasonal temperature curve,
// monsoon-weighted rainfall, and humidity loosely anti-correlated with
// temperature, then injects missing cells and malformed dates.
func generate(rng *rand.Rand, start time.Time, days int, dirty float64, badDates int) [][]string {
	rows := make([][]string, 0, days+1)
	rows = append(rows, []string{"Date", "Temperature", "Rainfall", "Humidity"})

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		phase := 2 * math.Pi * float64(date.YearDay()) / 365

		temp := 24 + 9*math.Sin(phase-math.Pi/2) + rng.NormFloat64()*1.5

		// Rainfall spikes June-September, mostly-dry otherwise.
		var rain float64
		m := date.Month()
		if m >= time.June && m <= time.September {
			if rng.Float64() < 0.7 {
				rain = rng.ExpFloat64() * 14
			}
		} else if rng.Float64() < 0.15 {
			rain = rng.ExpFloat64() * 3
		}

		humidity := 65 - 0.8*(temp-24) + rng.NormFloat64()*6
		if rain > 0 {
			humidity += 12
		}
		humidity = math.Max(20, math.Min(100, humidity))

		rows = append(rows, []string{
			date.Format("2006-01-02"),
			formatCell(rng, temp, dirty),
			formatCell(rng, rain, dirty),
			formatCell(rng, humidity, dirty),
		})
	}

	// Corrupt a few dates so the drop path gets exercised.
	for i := 0; i < badDates && i < days; i++ {
		row := rows[1+rng.Intn(days)]
		row[0] = "not-a-date-" + strconv.Itoa(i)
	}

	return rows
}

// formatCell renders a measurement, blanking it out with probability dirty.
func formatCell(rng *rand.Rand, v, dirty float64) string {
	if rng.Float64() < dirty {
		return ""
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'g', -1, 64)
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

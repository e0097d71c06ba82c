// Command validate cross-checks a cleaned weather CSV against the raw input
// it was produced from. It verifies the cleaning contract end to end: schema,
// the unparseable-date drop invariant, imputation completeness, and date
// ordering.
//
// Usage:
//
//	go run ./cmd/validate -raw data/raw_weather.csv -cleaned data/cleaned_weather.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/weather-analysis/internal/dataset"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	raw := flag.String("raw", "", "path to the raw weather CSV")
	cleaned := flag.String("cleaned", "", "path to the cleaned weather CSV")
	flag.Parse()

	if *raw == "" || *cleaned == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*raw, *cleaned))
}

func run(rawPath, cleanedPath string) int {
	fmt.Println("=== Cleaned Dataset Validation ===")
	fmt.Println()

	rawHeader, rawRows, err := loadCSV(rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw CSV: %v\n", err)
		return 1
	}
	cleanHeader, cleanRows, err := loadCSV(cleanedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load cleaned CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(cleanHeader),
		validateDropInvariant(rawHeader, rawRows, cleanRows),
		validateImputation(cleanHeader, cleanRows),
		validateOrdering(cleanRows),
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d raw, %d cleaned\n", len(rawRows), len(cleanRows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty CSV: %s", path)
	}
	return all[0], all[1:], nil
}

// ── Phase 1: Schema ──
// The cleaned header must be Date followed by a subset of the measurement
// columns in canonical order.

func validateSchema(header []string) *phase {
	p := &phase{name: "Phase 1: Schema (header shape)"}

	if len(header) == 0 || header[0] != dataset.ColDate {
		p.errorf("first column is %q, want %q", first(header), dataset.ColDate)
		return p
	}

	rest := header[1:]
	want := make([]string, 0, len(rest))
	for _, col := range dataset.MeasurementColumns {
		if slices.Contains(rest, col) {
			want = append(want, col)
		}
	}
	if !slices.Equal(rest, want) {
		p.errorf("measurement columns %v, want canonical order subset %v", rest, want)
	}
	return p
}

// ── Phase 2: Drop invariant ──
// Every raw row with a parseable date survives; every row with an
// unparseable date is gone.

func validateDropInvariant(rawHeader []string, rawRows, cleanRows [][]string) *phase {
	p := &phase{name: "Phase 2: Drop invariant (unparseable dates)"}

	dateIdx := slices.Index(rawHeader, dataset.ColDate)
	if dateIdx < 0 {
		p.errorf("raw CSV has no %s column", dataset.ColDate)
		return p
	}

	parseable := 0
	for _, row := range rawRows {
		if dateIdx >= len(row) {
			continue
		}
		if _, ok := dataset.ParseDate(row[dateIdx]); ok {
			parseable++
		}
	}

	if len(cleanRows) != parseable {
		p.errorf("cleaned has %d rows, raw has %d parseable dates", len(cleanRows), parseable)
	}
	return p
}

// ── Phase 3: Imputation completeness ──
// No cleaned measurement cell may be empty or NaN.

func validateImputation(header []string, rows [][]string) *phase {
	p := &phase{name: "Phase 3: Imputation completeness"}

	for i, row := range rows {
		for j := 1; j < len(header) && j < len(row); j++ {
			cell := strings.TrimSpace(row[j])
			if cell == "" {
				p.errorf("row %d column %s: empty cell", i+2, header[j])
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) {
				p.errorf("row %d column %s: %q is not a finite number", i+2, header[j], cell)
			}
		}
	}
	return p
}

// ── Phase 4: Ordering ──
// Cleaned dates must parse and be non-decreasing.

func validateOrdering(rows [][]string) *phase {
	p := &phase{name: "Phase 4: Date ordering"}

	var prev time.Time
	for i, row := range rows {
		if len(row) == 0 {
			p.errorf("row %d: empty", i+2)
			continue
		}
		d, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			p.errorf("row %d: date %q not in 2006-01-02 form", i+2, row[0])
			continue
		}
		if d.Before(prev) {
			p.errorf("row %d: date %s before previous %s", i+2, d.Format("2006-01-02"), prev.Format("2006-01-02"))
		}
		prev = d
	}
	return p
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

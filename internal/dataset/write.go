package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteCSV persists the cleaned table: header row, then one row per
// observation, columns in canonical order (Date first, then the present
// measurements). Dates render as 2006-01-02 and floats in shortest
// round-trip form, so output is byte-identical for identical tables.
func WriteCSV(t Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cleaned dataset: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	cols := t.PresentColumns()
	header := append([]string{ColDate}, cols...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write cleaned dataset header: %w", err)
	}

	row := make([]string, len(header))
	for i := 0; i < t.Len(); i++ {
		row[0] = t.Dates[i].Format("2006-01-02")
		for j, col := range cols {
			row[j+1] = strconv.FormatFloat(t.Column(col)[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write cleaned dataset row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush cleaned dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close cleaned dataset: %w", err)
	}
	return nil
}

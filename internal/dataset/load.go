package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Named failure kinds. Everything else the loader can hit (unreadable file,
// malformed CSV) is wrapped generically and handled at the top level.
var (
	// ErrMissingFile means the raw dataset does not exist at the given path.
	ErrMissingFile = errors.New("raw dataset file not found")

	// ErrMissingDateColumn means the dataset has no "Date" column.
	ErrMissingDateColumn = errors.New("dataset must contain a Date column")
)

// Load reads the raw CSV at path into a string-typed dataframe. No type
// coercion happens here — cells stay exactly as they appear in the file so
// the cleaner owns all parsing decisions. Absent measurement columns are
// logged as warnings and the load continues.
func Load(path string, logger *slog.Logger) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return dataframe.DataFrame{}, fmt.Errorf("open raw dataset: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read raw dataset %s: %w", path, df.Err)
	}

	names := df.Names()
	if !slices.Contains(names, ColDate) {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrMissingDateColumn, path)
	}

	for _, col := range MeasurementColumns {
		if !slices.Contains(names, col) {
			logger.Warn("measurement column absent, continuing with reduced data", "column", col)
		}
	}

	return df, nil
}

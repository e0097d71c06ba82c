// Package dataset loads, cleans, and persists the weather observation table.
//
// # Input conventions
//
// The raw dataset is a headered CSV with a mandatory "Date" column and up to
// three measurement columns:
//
//	Temperature  air temperature in °C
//	Rainfall     precipitation in mm (non-negative by convention)
//	Humidity     relative humidity in percent (0–100 by convention)
//
// Any other columns are ignored. Any subset of the measurement columns may be
// absent; their absence is a warning, not an error.
//
// # Date formats
//
// Dates are accepted in ISO form ("2006-01-02", with or without a time
// component), RFC 3339, or US slash form ("01/02/2006"). A value in any other
// shape is treated as missing and the whole row is dropped during cleaning.
//
// # Missing values
//
// Empty cells and non-numeric strings in measurement columns become NaN during
// coercion and are then imputed:
//
//	Temperature  column mean of the available values
//	Rainfall     0 — a missing rainfall reading means no rain was recorded
//	Humidity     column median of the available values
//
// A measurement column with no parseable values at all is dropped from the
// cleaned table instead of being filled with a sentinel.
//
// # Cleaned table invariants
//
// After [Cleaner.Clean] the table is sorted ascending by date, every present
// measurement column is NaN-free, and [WriteCSV] output for a given table is
// byte-identical across runs.
package dataset

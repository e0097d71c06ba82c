package dataset

import "time"

// Column names recognized in the raw dataset, in canonical output order.
const (
	ColDate        = "Date"
	ColTemperature = "Temperature"
	ColRainfall    = "Rainfall"
	ColHumidity    = "Humidity"
)

// MeasurementColumns lists the optional numeric columns in canonical order.
var MeasurementColumns = []string{ColTemperature, ColRainfall, ColHumidity}

// Table is the cleaned observation table: one date per row plus whichever
// measurement columns survived cleaning. A nil slice means the column is
// absent; present slices always share len(Dates).
type Table struct {
	Dates       []time.Time
	Temperature []float64
	Rainfall    []float64
	Humidity    []float64
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Dates) }

// Column returns the values for a measurement column, or nil if absent.
func (t *Table) Column(name string) []float64 {
	switch name {
	case ColTemperature:
		return t.Temperature
	case ColRainfall:
		return t.Rainfall
	case ColHumidity:
		return t.Humidity
	default:
		return nil
	}
}

// Has reports whether a measurement column is present.
func (t *Table) Has(name string) bool { return t.Column(name) != nil }

// PresentColumns returns the present measurement column names in canonical order.
func (t *Table) PresentColumns() []string {
	var cols []string
	for _, name := range MeasurementColumns {
		if t.Has(name) {
			cols = append(cols, name)
		}
	}
	return cols
}

// HasAllMeasurements reports whether Temperature, Rainfall, and Humidity are
// all present. Season augmentation is only meaningful when they are.
func (t *Table) HasAllMeasurements() bool {
	return t.Temperature != nil && t.Rainfall != nil && t.Humidity != nil
}

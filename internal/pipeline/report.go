package pipeline

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/couchcryptid/weather-analysis/internal/stats"
)

// Console rendering of the statistics bundle. Plain aligned text: the run is
// analyst-facing and its reports are read straight off the terminal.

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeDescribe(w io.Writer, summaries []stats.Summary) {
	fmt.Fprintln(w, "\n-- Descriptive statistics --")
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			s.Column, s.Count, s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max)
	}
	tw.Flush()
}

func writeAggregates(w io.Writer, title string, aggs []stats.Aggregate) {
	fmt.Fprintf(w, "\n-- %s --\n", title)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "period\tcolumn\tmean\tmin\tmax\tstd")
	for _, agg := range aggs {
		for _, col := range agg.Columns {
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\n",
				agg.PeriodEnd.Format("2006-01-02"), col.Column, col.Mean, col.Min, col.Max, col.Std)
		}
	}
	tw.Flush()
}

func writeSeasonMeans(w io.Writer, means []stats.SeasonMean) {
	fmt.Fprintln(w, "\n-- Season-wise averages --")
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "season\ttemperature\trainfall\thumidity")
	for _, m := range means {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\n", m.Season, m.Temperature, m.Rainfall, m.Humidity)
	}
	tw.Flush()
}

package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
)

// csvHeader is the report column contract. Order is load-bearing:
// downstream notebooks index by position.
var csvHeader = []string{
	"interval_m",
	"baseline_score", "baseline_98_102", "baseline_95_105", "baseline_90_110", "baseline_outside", "baseline_median", "baseline_worst",
	"quality_score", "quality_98_102", "quality_95_105", "quality_90_110", "quality_outside", "quality_median", "quality_worst",
	"combined_score", "combined_98_102", "combined_95_105", "combined_90_110", "combined_outside", "combined_median", "combined_worst",
	"quality_score_delta", "combined_score_delta",
}

// WriteCSV emits summaries in their given (ranked) order. The two
// trailing columns are each non-baseline variant's score minus the
// baseline score at the same interval.
func WriteCSV(w io.Writer, summaries []IntervalSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		row := make([]string, 0, len(csvHeader))
		row = append(row, s.Key)
		for _, v := range []IntervalVariant{s.Baseline, s.Quality, s.Combined} {
			row = append(row,
				strconv.Itoa(v.WeightedScore),
				strconv.Itoa(v.Bands.Tight),
				strconv.Itoa(v.Bands.Mid),
				strconv.Itoa(v.Bands.Wide),
				strconv.Itoa(v.Bands.Outside),
				strconv.FormatFloat(v.Median, 'f', 2, 64),
				strconv.FormatFloat(v.Worst, 'f', 2, 64),
			)
		}
		row = append(row,
			strconv.Itoa(s.Quality.WeightedScore-s.Baseline.WeightedScore),
			strconv.Itoa(s.Combined.WeightedScore-s.Baseline.WeightedScore),
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the ranked report to path, creating parents.
func WriteCSVFile(path string, summaries []IntervalSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, summaries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteComparison renders the cross-variant table for one interval,
// normally the combined-optimal one.
func WriteComparison(w io.Writer, s IntervalSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "variant\tscore\t98-102\t95-105\t90-110\toutside\tmedian\tworst\n")
	for _, v := range []IntervalVariant{s.Baseline, s.Quality, s.Combined} {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.2f\t%.2f\n",
			v.Name, v.WeightedScore,
			v.Bands.Tight, v.Bands.Mid, v.Bands.Wide, v.Bands.Outside,
			v.Median, v.Worst)
	}
	return tw.Flush()
}

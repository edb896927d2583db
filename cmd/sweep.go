/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/rotblauer/vert/corpus"
	"github.com/rotblauer/vert/params"
	"github.com/rotblauer/vert/sweep"
	"github.com/spf13/cobra"
)

var optSweepGains string
var optSweepOut string
var optSweepWorkers int
var optSweepStart float64
var optSweepEnd float64
var optSweepStep float64
var optSweepNoCache bool
var optSweepInflux bool
var optSweepS3Key string
var optSweepTop int

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep [corpus-dir]",
	Short: "Run the comparative interval sweep over a GPX corpus",
	Long: `

Crosses every processing interval with every evaluable corpus track,
computes baseline, quality-adjusted, and combined gain estimates, and
ranks intervals by the combined variant's weighted accuracy score.

Tracks without a positive official gain, without real elevation
variation, or duplicating another track's content are excluded.

Flags:

  --gains    CSV or JSON file of official gains keyed by filename.
  --out      Report CSV destination. (Default is <datadir>/report.csv.)
  --workers  Parallel work-item workers. (Default is NumCPU.)
  --start, --end, --step
             Interval sweep bounds in meters. (Default 0.05..8.0 by 0.05.)
  --no-cache Disable the on-disk GPX parse cache.
  --influx   Export interval summaries to InfluxDB.
  --s3-key   Upload the report CSV to S3 under this key.

Examples:

  vert sweep ./corpus --gains official_gains.csv --out report.csv
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaultSlog(cmd, args)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gains := map[string]float64{}
		if optSweepGains != "" {
			var err error
			gains, err = corpus.LoadOfficialGains(optSweepGains)
			if err != nil {
				return err
			}
		}

		loader := corpus.NewLoader()
		if !optSweepNoCache {
			cache, err := corpus.OpenCache(filepath.Join(params.DatadirRoot, params.CorpusCacheDBName))
			if err != nil {
				slog.Warn("Corpus cache unavailable", "error", err)
			} else {
				loader.Cache = cache
				defer cache.Close()
			}
		}

		tracks, err := loader.Load(ctx, args[0], gains)
		if err != nil {
			return err
		}

		h := sweep.NewHarness()
		h.Config.IntervalStart = optSweepStart
		h.Config.IntervalEnd = optSweepEnd
		h.Config.IntervalStep = optSweepStep
		h.Config.Workers = optSweepWorkers

		start := time.Now()
		summaries := h.Evaluate(ctx, tracks)
		slog.Info("Sweep complete", "intervals", len(summaries),
			"elapsed", time.Since(start).Round(time.Second))

		if err := sweep.WriteCSVFile(optSweepOut, summaries); err != nil {
			return err
		}
		slog.Info("Report written", "path", optSweepOut)

		top := optSweepTop
		if top > len(summaries) {
			top = len(summaries)
		}
		fmt.Printf("Top %d intervals by combined score:\n", top)
		for _, s := range summaries[:top] {
			fmt.Printf("  %sm: combined=%d baseline=%d quality=%d median=%.1f%%\n",
				s.Key, s.Combined.WeightedScore, s.Baseline.WeightedScore,
				s.Quality.WeightedScore, s.Combined.Median)
		}
		if best, ok := sweep.Optimum(summaries, sweep.SelectCombined); ok {
			fmt.Printf("\nVariant comparison at combined-optimal interval %sm:\n", best.Key)
			if err := sweep.WriteComparison(os.Stdout, best); err != nil {
				return err
			}
		}

		if optSweepInflux {
			if err := sweep.ExportSummaries(summaries); err != nil {
				slog.Error("InfluxDB export failed", "error", err)
			}
		}
		if optSweepS3Key != "" {
			data, err := os.ReadFile(optSweepOut)
			if err != nil {
				return err
			}
			if err := sweep.UploadReportS3(optSweepS3Key, data); err != nil {
				slog.Error("S3 upload failed", "error", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.PersistentFlags().StringVar(&optSweepGains, "gains", "", "Official gains file (CSV or JSON)")
	sweepCmd.PersistentFlags().StringVar(&optSweepOut, "out", filepath.Join(params.DatadirRoot, "report.csv"), "Report CSV path")
	sweepCmd.PersistentFlags().IntVar(&optSweepWorkers, "workers", runtime.NumCPU(), "Number of workers to run parallel")
	sweepCmd.PersistentFlags().Float64Var(&optSweepStart, "start", params.DefaultSweepConfig.IntervalStart, "First interval, meters")
	sweepCmd.PersistentFlags().Float64Var(&optSweepEnd, "end", params.DefaultSweepConfig.IntervalEnd, "Last interval, meters")
	sweepCmd.PersistentFlags().Float64Var(&optSweepStep, "step", params.DefaultSweepConfig.IntervalStep, "Interval step, meters")
	sweepCmd.PersistentFlags().BoolVar(&optSweepNoCache, "no-cache", false, "Disable the GPX parse cache")
	sweepCmd.PersistentFlags().BoolVar(&optSweepInflux, "influx", false, "Export summaries to InfluxDB")
	sweepCmd.PersistentFlags().StringVar(&optSweepS3Key, "s3-key", "", "Upload the report to S3 under this key")
	sweepCmd.PersistentFlags().IntVar(&optSweepTop, "top", 10, "Ranked intervals to print")
}

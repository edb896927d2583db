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
	"fmt"

	"github.com/rotblauer/vert/corpus"
	"github.com/rotblauer/vert/geo/gain"
	"github.com/rotblauer/vert/geo/quality"
	"github.com/rotblauer/vert/geo/terrain"
	"github.com/rotblauer/vert/params"
	"github.com/spf13/cobra"
)

var optEstimateInterval float64
var optEstimateGains string

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [gpx-file]...",
	Short: "Estimate elevation gain for GPX files",
	Long: `

Prints, per file, the terrain classification, GPS quality score, and
the three estimator variants' gains in meters.

Flags:

  --interval  Processing interval in meters. (Default is the internal
              resolution, 10m.)
  --gains     Official gains file (CSV or JSON); prints the known gain
              alongside the estimates when the filename matches.

Examples:

  vert estimate ride.gpx
  vert estimate --interval 1.9 --gains official_gains.csv *.gpx
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaultSlog(cmd, args)

		gains := map[string]float64{}
		if optEstimateGains != "" {
			var err error
			gains, err = corpus.LoadOfficialGains(optEstimateGains)
			if err != nil {
				return err
			}
		}

		analyzer := quality.NewAnalyzer()
		for _, path := range args {
			t, err := corpus.ParseGPX(path)
			if err != nil {
				return err
			}
			t.OfficialGain = gains[t.Name]

			suite := gain.NewSuite(optEstimateInterval)
			r := suite.Estimate(t)
			class := terrain.NewEstimator(optEstimateInterval).Classify(t)
			profile := analyzer.Analyze(t)

			fmt.Printf("%s\n", t.Name)
			fmt.Printf("  distance: %.1fkm  terrain: %s  quality: %.0f/100\n",
				t.TotalDistance()/1000, class.Name, profile.Score)
			fmt.Printf("  baseline: %.1fm  quality-adjusted: %.1fm  combined: %.1fm\n",
				r.Baseline, r.QualityAdjusted, r.Combined)
			if t.OfficialGain > 0 {
				fmt.Printf("  official: %.1fm\n", t.OfficialGain)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.PersistentFlags().Float64Var(&optEstimateInterval, "interval",
		params.DefaultEstimatorConfig.InternalResolution, "Processing interval, meters")
	estimateCmd.PersistentFlags().StringVar(&optEstimateGains, "gains", "", "Official gains file (CSV or JSON)")
}

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
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotblauer/vert/corpus"
	"github.com/rotblauer/vert/geo/gain"
	"github.com/rotblauer/vert/tiles"
	"github.com/spf13/cobra"
)

var optCorrectSmooth float64
var optCorrectOut string

// correctCmd represents the correct command
var correctCmd = &cobra.Command{
	Use:   "correct [gpx-file]",
	Short: "Replace GPS elevations with terrain-tile data",
	Long: `

Samples the Terrarium global elevation tileset at each trace
coordinate and rebuilds the elevation series from terrain data,
falling back to the GPS value for points whose tile cannot be fetched.
Tiles cache on disk under the vert datadir.

Flags:

  --smooth  Rolling-mean window over the corrected series, meters.
            0 disables smoothing. (Default is 150.)
  --out     Write the corrected profile as CSV (distance_m,elevation_m).

Examples:

  vert correct ride.gpx
  vert correct --smooth 0 --out corrected.csv ride.gpx
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaultSlog(cmd, args)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		t, points, err := corpus.ParseGPXPoints(args[0])
		if err != nil {
			return err
		}

		source, err := tiles.NewSource()
		if err != nil {
			return err
		}
		defer source.Stop()

		corrector := &tiles.Corrector{Source: source, SmoothingWindowMeters: optCorrectSmooth}
		corrected, err := corrector.Correct(ctx, t, points)
		if err != nil {
			return err
		}

		suite := gain.NewSuite(0)
		fmt.Printf("%s\n", t.Name)
		fmt.Printf("  gps baseline gain:     %.1fm\n", suite.Baseline(t))
		fmt.Printf("  terrain baseline gain: %.1fm\n", suite.Baseline(corrected))

		if optCorrectOut != "" {
			f, err := os.Create(optCorrectOut)
			if err != nil {
				return err
			}
			w := csv.NewWriter(f)
			_ = w.Write([]string{"distance_m", "elevation_m"})
			for i := range corrected.Elevations {
				_ = w.Write([]string{
					strconv.FormatFloat(corrected.Distances[i], 'f', 1, 64),
					strconv.FormatFloat(corrected.Elevations[i], 'f', 2, 64),
				})
			}
			w.Flush()
			if err := w.Error(); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Printf("  corrected profile: %s\n", optCorrectOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(correctCmd)

	correctCmd.PersistentFlags().Float64Var(&optCorrectSmooth, "smooth", 150, "Rolling-mean window, meters (0 = raw)")
	correctCmd.PersistentFlags().StringVar(&optCorrectOut, "out", "", "Corrected profile CSV path")
}

/*
Package terrain implements distance-based adaptive elevation gain
estimation.

The estimator classifies a route by its raw gain density, then runs a
four-stage filter tuned to that class: uniform resampling, median
despiking, Gaussian smoothing, and deadband accumulation. Flat routes
get wide smoothing and a tight deadband because nearly all of their
raw vertical signal is noise; mountain routes get the opposite because
aggressive smoothing would erase real climbing.
*/
package terrain

import (
	"log/slog"
	"math"

	"github.com/rotblauer/vert/params"
	"github.com/rotblauer/vert/types/track"
)

// Estimator computes elevation gain at a fixed processing interval.
// Safe for concurrent use; all state lives on the stack per call.
type Estimator struct {
	Config *params.EstimatorConfig

	// Interval is the resampling grid spacing in meters.
	Interval float64
}

// NewEstimator returns an estimator at the given processing interval.
// Non-positive intervals fall back to the default internal resolution.
func NewEstimator(interval float64) *Estimator {
	cfg := params.DefaultEstimatorConfig
	if interval <= 0 {
		interval = cfg.InternalResolution
	}
	return &Estimator{Config: cfg, Interval: interval}
}

// Classify returns the terrain class for the track's raw gain density.
func (e *Estimator) Classify(t *track.Track) params.TerrainClassParams {
	gainPerKm := 0.0
	if km := t.TotalDistance() / 1000.0; km > 0 {
		gainPerKm = t.RawGain() / km
	}
	return params.TerrainClassFor(gainPerKm)
}

// EstimateGain runs the full pipeline and returns cumulative gain in
// meters. Deterministic; a pure function of the track and interval.
func (e *Estimator) EstimateGain(t *track.Track) float64 {
	gain, _ := e.EstimateGainLoss(t)
	return gain
}

// EstimateGainLoss returns cumulative gain and loss in meters.
func (e *Estimator) EstimateGainLoss(t *track.Track) (gain, loss float64) {
	if len(t.Elevations) < 2 {
		return 0, 0
	}

	class := e.Classify(t)

	_, gridElevations := Resample(t.Elevations, t.Distances, e.Interval)
	if len(gridElevations) < 2 {
		return 0, 0
	}

	despiked := MedianFilter(gridElevations, e.Config.MedianWindow)
	smoothed := GaussianSmooth(despiked, e.smoothingWindow(class))

	changes := make([]float64, len(smoothed))
	for i := 1; i < len(smoothed); i++ {
		changes[i] = smoothed[i] - smoothed[i-1]
	}
	filtered := deadband(changes, class.DeadbandMeters)

	for _, c := range filtered {
		if c > 0 {
			gain += c
		} else {
			loss -= c
		}
	}

	slog.Debug("Terrain-adaptive estimate",
		"track", t.Name, "terrain", class.Name, "interval", e.Interval,
		"raw", t.RawGain(), "estimated", gain)
	return gain, loss
}

// smoothingWindow converts the class window from meters to resampled
// grid samples, clamped to keep tiny intervals from producing absurd
// kernel sizes.
func (e *Estimator) smoothingWindow(class params.TerrainClassParams) int {
	window := int(math.Round(class.SmoothingWindowMeters / e.Interval))
	if window < e.Config.MinSmoothingWindow {
		window = e.Config.MinSmoothingWindow
	}
	if window > e.Config.MaxSmoothingWindow {
		window = e.Config.MaxSmoothingWindow
	}
	return window
}

// deadband commits accumulated climb only once it reaches threshold,
// spreading the committed climb evenly across the steps that produced
// it. A descent step resets the accumulator, so sub-threshold
// oscillation contributes nothing. Climb still pending when the trace
// ends is discarded as noise.
func deadband(changes []float64, threshold float64) []float64 {
	filtered := make([]float64, 0, len(changes))
	if len(changes) == 0 {
		return filtered
	}
	filtered = append(filtered, 0)

	climb := 0.0
	lastCommit := 0
	for i := 1; i < len(changes); i++ {
		c := changes[i]
		if c > 0 {
			climb += c
			if climb >= threshold {
				perStep := climb / float64(i-lastCommit)
				for j := lastCommit + 1; j <= i; j++ {
					if j < len(filtered) {
						filtered[j] = perStep
					} else {
						filtered = append(filtered, perStep)
					}
				}
				climb = 0
				lastCommit = i
			} else {
				filtered = append(filtered, 0)
			}
			continue
		}
		filtered = append(filtered, c)
		if climb > 0 {
			climb = 0
			lastCommit = i
		}
	}
	return filtered
}

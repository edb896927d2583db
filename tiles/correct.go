package tiles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/rotblauer/vert/types/track"
)

// ElevationSource is the lookup the corrector consumes. *Source
// satisfies it; tests substitute fakes.
type ElevationSource interface {
	Elevation(ctx context.Context, p orb.Point) (float64, error)
}

// Corrector rewrites a track's elevations from terrain data.
type Corrector struct {
	Source ElevationSource

	// SmoothingWindowMeters applies a rolling mean over the corrected
	// series. Zero means raw terrain values.
	SmoothingWindowMeters float64
}

// Correct returns a copy of the track with terrain elevations, one
// point per sample. Per-point lookup failures fall back to the GPS
// elevation for that sample.
func (c *Corrector) Correct(ctx context.Context, t *track.Track, points []orb.Point) (*track.Track, error) {
	if len(points) != len(t.Elevations) {
		return nil, fmt.Errorf("correct %s: %d points for %d samples", t.Name, len(points), len(t.Elevations))
	}

	corrected := make([]float64, len(points))
	fallbacks := 0
	for i, p := range points {
		elevation, err := c.Source.Elevation(ctx, p)
		if err != nil {
			corrected[i] = t.Elevations[i]
			fallbacks++
			continue
		}
		corrected[i] = elevation
	}
	if fallbacks > 0 {
		slog.Warn("Terrain correction fell back to GPS elevations",
			"track", t.Name, "samples", len(points), "fallbacks", fallbacks)
	}

	if c.SmoothingWindowMeters > 0 {
		corrected = rollingMean(corrected, t.Distances, c.SmoothingWindowMeters)
	}
	return t.WithElevations(corrected), nil
}

// rollingMean averages each sample over a centered window of the
// given width in meters, using cumulative distances to bound it.
func rollingMean(elevations, distances []float64, windowMeters float64) []float64 {
	out := make([]float64, len(elevations))
	half := windowMeters / 2
	lo := 0
	for i := range elevations {
		for lo < i && distances[i]-distances[lo] > half {
			lo++
		}
		hi := i
		for hi+1 < len(elevations) && distances[hi+1]-distances[i] <= half {
			hi++
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += elevations[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

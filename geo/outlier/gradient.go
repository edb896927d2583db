/*
Package outlier rejects statistically anomalous elevation gradients.

GPS units under tree cover or in canyons emit short bursts of
elevation that imply absurd grades. Rather than filter on a fixed
grade cap, the filter fences on the track's own gradient distribution,
so a mountain route's legitimately steep pitches survive.
*/
package outlier

import (
	"sort"

	"github.com/rotblauer/vert/params"
)

// GradientFilter interpolates over samples whose approach gradient
// falls outside the interquartile fences of the track's gradient
// population.
type GradientFilter struct {
	Config *params.OutlierConfig

	// Replaced counts samples rewritten by the last Clean call.
	Replaced int
}

func NewGradientFilter() *GradientFilter {
	return &GradientFilter{Config: params.DefaultOutlierConfig}
}

// Clean returns a same-length elevation series with outlier-driven
// values interpolated toward their in-bounds neighbors. Distances are
// read, never modified. With fewer than Config.MinSamples samples
// there is no population to fence on and the input is returned
// unchanged (a fresh copy is still made, callers may mutate).
func (f *GradientFilter) Clean(elevations, distances []float64) []float64 {
	cleaned := make([]float64, len(elevations))
	copy(cleaned, elevations)
	f.Replaced = 0

	if len(elevations) < f.Config.MinSamples {
		return cleaned
	}

	// Per-step % grades. Zero-distance steps carry no gradient
	// information and are skipped, so gradients[i-1] belongs to the
	// step arriving at sample i only when every step moves; the
	// original indexing convention is preserved regardless.
	gradients := make([]float64, 0, len(elevations)-1)
	for i := 1; i < len(elevations); i++ {
		dd := distances[i] - distances[i-1]
		if dd > 0 {
			gradients = append(gradients, (elevations[i]-elevations[i-1])/dd*100.0)
		}
	}
	if len(gradients) == 0 {
		return cleaned
	}

	sorted := make([]float64, len(gradients))
	copy(sorted, gradients)
	sort.Float64s(sorted)

	// Positional quartiles, deliberately not interpolated percentiles.
	// Downstream validation numbers were produced with this indexing;
	// keep parity.
	q1 := sorted[len(sorted)/4]
	q3 := sorted[(len(sorted)*3)/4]
	iqr := q3 - q1

	lower := q1 - f.Config.IQRFactor*iqr
	upper := q3 + f.Config.IQRFactor*iqr

	for i := 1; i < len(elevations)-1; i++ {
		if i-1 >= len(gradients) {
			break
		}
		g := gradients[i-1]
		if g >= lower && g <= upper {
			continue
		}
		prev := previousInBounds(i, gradients, lower, upper)
		next := nextInBounds(i, gradients, lower, upper)
		if next <= prev {
			continue
		}
		w := float64(i-prev) / float64(next-prev)
		cleaned[i] = cleaned[prev]*(1.0-w) + cleaned[next]*w
		f.Replaced++
	}
	return cleaned
}

// previousInBounds scans backward for the nearest sample whose
// approach gradient sits inside the fences, defaulting to the start
// of the sequence.
func previousInBounds(start int, gradients []float64, lower, upper float64) int {
	for i := start - 1; i >= 0; i-- {
		if i < len(gradients) && gradients[i] >= lower && gradients[i] <= upper {
			return i
		}
	}
	return 0
}

// nextInBounds scans forward, defaulting to the end of the sequence.
// Gradient j describes the step arriving at sample j+1.
func nextInBounds(start int, gradients []float64, lower, upper float64) int {
	for i := start; i < len(gradients); i++ {
		if gradients[i] >= lower && gradients[i] <= upper {
			return i + 1
		}
	}
	return len(gradients)
}

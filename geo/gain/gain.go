/*
Package gain composes the estimator variants compared by the sweep
harness.

Three variants, each strictly additive over the last:

	baseline: terrain-adaptive pipeline alone
	quality:  baseline with GPS quality recovery factors
	combined: gradient outlier interpolation, then quality recovery

The combined variant judges quality on the original trace, not the
cleaned one. Cleaning rewrites the very samples the noise ratio is
computed from; correcting against the cleaned trace would undercount
the degradation the factors exist to repay.
*/
package gain

import (
	"github.com/rotblauer/vert/geo/outlier"
	"github.com/rotblauer/vert/geo/quality"
	"github.com/rotblauer/vert/geo/terrain"
	"github.com/rotblauer/vert/types/track"
)

// Variant names as they appear in reports.
const (
	VariantBaseline = "baseline"
	VariantQuality  = "quality"
	VariantCombined = "combined"
)

// Result holds one trace's gain under each variant at one interval.
type Result struct {
	Baseline        float64
	QualityAdjusted float64
	Combined        float64
}

// Suite evaluates all variants at a fixed processing interval. Not
// safe for concurrent use; the outlier filter carries per-call state.
// Workers each build their own.
type Suite struct {
	Interval float64

	baseline *terrain.Estimator
	adjusted *quality.Adjusted
	filter   *outlier.GradientFilter
}

func NewSuite(interval float64) *Suite {
	baseline := terrain.NewEstimator(interval)
	return &Suite{
		Interval: interval,
		baseline: baseline,
		adjusted: quality.NewAdjusted(baseline),
		filter:   outlier.NewGradientFilter(),
	}
}

// Baseline runs the terrain-adaptive estimator alone.
func (s *Suite) Baseline(t *track.Track) float64 {
	return s.baseline.EstimateGain(t)
}

// QualityAdjusted applies the recovery factors on top of the baseline.
func (s *Suite) QualityAdjusted(t *track.Track) float64 {
	return s.adjusted.EstimateGain(t)
}

// Combined cleans gradient outliers first, then estimates and adjusts
// using the original trace's quality profile.
func (s *Suite) Combined(t *track.Track) float64 {
	profile := s.adjusted.Analyzer.Analyze(t)
	cleaned := t.WithElevations(s.filter.Clean(t.Elevations, t.Distances))
	return s.adjusted.Adjust(s.baseline.EstimateGain(cleaned), profile)
}

// Estimate evaluates all three variants, sharing the baseline run and
// the quality profile between them.
func (s *Suite) Estimate(t *track.Track) Result {
	profile := s.adjusted.Analyzer.Analyze(t)
	baseline := s.baseline.EstimateGain(t)

	cleaned := t.WithElevations(s.filter.Clean(t.Elevations, t.Distances))
	combinedBase := s.baseline.EstimateGain(cleaned)

	return Result{
		Baseline:        baseline,
		QualityAdjusted: s.adjusted.Adjust(baseline, profile),
		Combined:        s.adjusted.Adjust(combinedBase, profile),
	}
}

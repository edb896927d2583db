package quality

import (
	"log/slog"

	"github.com/rotblauer/vert/types/track"
)

// GainEstimator is anything that turns a track into a cumulative
// elevation gain in meters.
type GainEstimator interface {
	EstimateGain(t *track.Track) float64
}

// Adjusted wraps a baseline estimator and inflates its result for
// traces whose quality profile falls below the correction threshold.
// Smoothing eats real gain on sparse or noisy input; the recovery
// factors hand some of it back.
type Adjusted struct {
	Base     GainEstimator
	Analyzer *Analyzer
}

func NewAdjusted(base GainEstimator) *Adjusted {
	return &Adjusted{Base: base, Analyzer: NewAnalyzer()}
}

// EstimateGain runs the baseline then applies profile-driven recovery.
// The profile is always taken from the track passed in; callers that
// pre-clean a track and want the original's profile should use Adjust
// directly.
func (e *Adjusted) EstimateGain(t *track.Track) float64 {
	baseline := e.Base.EstimateGain(t)
	return e.Adjust(baseline, e.Analyzer.Analyze(t))
}

// Adjust applies the recovery multipliers to a baseline gain. High
// quality traces (score at or above the threshold) pass through
// untouched. Both factor families can apply at once; a sparse noisy
// trace gets both.
func (e *Adjusted) Adjust(baseline float64, p Profile) float64 {
	cfg := e.Analyzer.Config
	if p.Score >= cfg.CorrectionScoreThreshold {
		return baseline
	}

	corrected := baseline
	switch {
	case p.SamplingFrequency < cfg.LowFrequencyHz:
		corrected *= cfg.LowFrequencyFactor
	case p.SamplingFrequency < cfg.MidFrequencyHz:
		corrected *= cfg.MidFrequencyFactor
	}
	switch {
	case p.NoiseRatio > cfg.HighNoiseRatio:
		corrected *= cfg.HighNoiseFactor
	case p.NoiseRatio > cfg.ModerateNoiseRatio:
		corrected *= cfg.ModerateNoiseFactor
	}

	if corrected != baseline {
		slog.Debug("Quality correction applied",
			"score", p.Score, "baseline", baseline, "corrected", corrected)
	}
	return corrected
}

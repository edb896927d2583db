package params

// QualityConfig holds the GPS quality scoring weights and the
// empirical recovery multipliers applied to low-quality traces.
// The multipliers are calibrated against a validation corpus, not
// derived from first principles; recalibrate here, never inline.
type QualityConfig struct {
	// IdealPointSpacing is the spacing, in meters, at which the
	// spacing-fitness term of the composite score peaks.
	IdealPointSpacing float64

	// SpacingFalloff is the distance from ideal, in meters, at which
	// spacing fitness reaches zero.
	SpacingFalloff float64

	// SignalGapSeconds is the timestamp delta above which a pair of
	// adjacent samples counts as a signal gap.
	SignalGapSeconds float64

	// CorrectionScoreThreshold gates the recovery multipliers: traces
	// scoring at or above it pass through unmodified.
	CorrectionScoreThreshold float64

	// Sampling recovery. Low sample rates clip real climbing into
	// sub-deadband noise, so the estimate runs short.
	LowFrequencyHz     float64
	LowFrequencyFactor float64
	MidFrequencyHz     float64
	MidFrequencyFactor float64

	// Noise recovery. Oscillating elevation deltas mean the deadband
	// filter is discarding a slice of genuine gain along with the noise.
	HighNoiseRatio      float64
	HighNoiseFactor     float64
	ModerateNoiseRatio  float64
	ModerateNoiseFactor float64
}

var DefaultQualityConfig = &QualityConfig{
	IdealPointSpacing:        10.0,
	SpacingFalloff:           50.0,
	SignalGapSeconds:         10.0,
	CorrectionScoreThreshold: 50.0,
	LowFrequencyHz:           0.5,
	LowFrequencyFactor:       1.20,
	MidFrequencyHz:           1.0,
	MidFrequencyFactor:       1.10,
	HighNoiseRatio:           0.5,
	HighNoiseFactor:          1.15,
	ModerateNoiseRatio:       0.3,
	ModerateNoiseFactor:      1.08,
}

// OutlierConfig parameterizes the gradient outlier filter.
type OutlierConfig struct {
	// MinSamples below which the filter is an identity pass.
	MinSamples int

	// IQRFactor is the outlier fence multiplier. Twice the textbook
	// 1.5 on purpose: legitimate steep terrain produces gradients a
	// conventional fence would misclassify.
	IQRFactor float64
}

var DefaultOutlierConfig = &OutlierConfig{
	MinSamples: 10,
	IQRFactor:  2.0,
}

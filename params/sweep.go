package params

import "runtime"

// SweepConfig describes the processing-interval sweep the comparative
// harness runs over a corpus.
type SweepConfig struct {
	// IntervalStart, IntervalEnd, IntervalStep define the swept
	// processing intervals in meters, inclusive on both ends.
	IntervalStart float64
	IntervalEnd   float64
	IntervalStep  float64

	// Workers is the fixed size of the evaluation worker pool.
	Workers int

	// FlatElevationTolerance excludes tracks whose whole elevation
	// series stays within this many meters of the first sample; they
	// cannot produce a meaningful accuracy ratio.
	FlatElevationTolerance float64
}

var DefaultSweepConfig = &SweepConfig{
	IntervalStart:          0.05,
	IntervalEnd:            8.0,
	IntervalStep:           0.05,
	Workers:                runtime.NumCPU(),
	FlatElevationTolerance: 0.1,
}

// Intervals expands the configured range into the ordered sweep.
func (c *SweepConfig) Intervals() []float64 {
	n := int((c.IntervalEnd-c.IntervalStart)/c.IntervalStep + 0.5)
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, c.IntervalStart+float64(i)*c.IntervalStep)
	}
	return out
}

// Accuracy band edges and score weights, percent of official gain.
// Nested bands: a track in the 98-102 band is also in the wider two.
const (
	BandTightLow, BandTightHigh = 98.0, 102.0
	BandMidLow, BandMidHigh     = 95.0, 105.0
	BandWideLow, BandWideHigh   = 90.0, 110.0
	BandFailLow, BandFailHigh   = 80.0, 120.0

	ScoreWeightTight   = 10.0
	ScoreWeightMid     = 6.0
	ScoreWeightWide    = 3.0
	ScoreWeightOutside = 5.0
)

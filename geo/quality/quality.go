/*
Package quality characterizes the sampling fidelity of a GPS trace
and applies empirical gain corrections to traces that score poorly.

Consumer devices vary wildly: a chest-mounted watch logging at 1 Hz
under open sky produces a very different trace from a phone in a
pocket waking up every 15 seconds. The composite score folds spacing,
rate, noise, and consistency into one [0,100] number so downstream
code has a single knob to gate on.
*/
package quality

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/rotblauer/vert/params"
	"github.com/rotblauer/vert/types/track"
)

// Profile is a derived, read-only snapshot of a trace's sampling
// characteristics. Computed once per trace per evaluation pass, never
// mutated, never persisted.
type Profile struct {
	// AveragePointSpacing is total distance over sample steps, meters.
	AveragePointSpacing float64

	// SamplingFrequency is samples per second of elapsed time, Hz.
	SamplingFrequency float64

	// NoiseRatio is the fraction of adjacent elevation-delta pairs
	// with opposite sign. Pure oscillation scores 1; a monotone climb
	// scores 0.
	NoiseRatio float64

	// SignalGaps counts adjacent timestamp pairs more than the
	// configured gap threshold apart.
	SignalGaps int

	// Consistency is 1/(1+stddev of elevation deltas), in (0,1].
	Consistency float64

	// Score is the composite quality score in [0,100].
	Score float64
}

// Analyzer computes quality profiles. Pure computation, no state
// beyond configuration.
type Analyzer struct {
	Config *params.QualityConfig
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{Config: params.DefaultQualityConfig}
}

// Analyze derives the quality profile of a track. Tracks with fewer
// than 2 samples get the degenerate profile: score 0, noise ratio 1.
func (a *Analyzer) Analyze(t *track.Track) Profile {
	n := len(t.Elevations)
	if n < 2 {
		return Profile{NoiseRatio: 1}
	}

	p := Profile{}
	p.AveragePointSpacing = t.TotalDistance() / float64(n-1)
	if tt := t.TotalTime(); tt > 0 {
		p.SamplingFrequency = float64(n-1) / tt
	}

	deltas := make([]float64, n-1)
	for i := 1; i < n; i++ {
		deltas[i-1] = t.Elevations[i] - t.Elevations[i-1]
	}

	reversals, pairs := 0, 0
	for i := 1; i < len(deltas); i++ {
		if deltas[i] == 0 || deltas[i-1] == 0 {
			continue
		}
		pairs++
		if (deltas[i] > 0) != (deltas[i-1] > 0) {
			reversals++
		}
	}
	if pairs > 0 {
		p.NoiseRatio = float64(reversals) / float64(pairs)
	}

	for i := 1; i < n; i++ {
		if t.Times[i]-t.Times[i-1] > a.Config.SignalGapSeconds {
			p.SignalGaps++
		}
	}

	variance, err := stats.PopulationVariance(deltas)
	if err != nil {
		variance = 0
	}
	p.Consistency = 1.0 / (1.0 + math.Sqrt(variance))

	p.Score = a.score(p)
	return p
}

// score weights four clamped [0,1] terms at 25 points each.
func (a *Analyzer) score(p Profile) float64 {
	spacingFitness := 1.0 - math.Abs(p.AveragePointSpacing-a.Config.IdealPointSpacing)/a.Config.SpacingFalloff
	spacingFitness = math.Max(0, spacingFitness)

	frequencyFitness := math.Min(p.SamplingFrequency, 1.0)
	frequencyFitness = math.Max(0, frequencyFitness)

	noiseFitness := math.Max(0, 1.0-p.NoiseRatio)

	consistency := math.Max(0, p.Consistency)

	return 25.0*spacingFitness + 25.0*frequencyFitness + 25.0*noiseFitness + 25.0*consistency
}

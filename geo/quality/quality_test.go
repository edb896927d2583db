package quality

import (
	"math"
	"testing"

	"github.com/rotblauer/vert/types/track"
)

func TestAnalyzeDegenerateTrack(t *testing.T) {
	a := NewAnalyzer()
	for _, tr := range []*track.Track{
		{},
		{Elevations: []float64{100}, Distances: []float64{0}, Times: []float64{0}},
	} {
		p := a.Analyze(tr)
		if p.Score != 0 {
			t.Errorf("degenerate track score = %v, want 0", p.Score)
		}
		if p.NoiseRatio != 1 {
			t.Errorf("degenerate track noise ratio = %v, want 1", p.NoiseRatio)
		}
	}
}

func TestAnalyzeIdealTrack(t *testing.T) {
	// 10m spacing at 1Hz, steady climb with identical deltas. Every
	// score term should max out.
	n := 100
	tr := &track.Track{
		Elevations: make([]float64, n),
		Distances:  make([]float64, n),
		Times:      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		tr.Elevations[i] = 100 + float64(i)*0.5
		tr.Distances[i] = float64(i) * 10
		tr.Times[i] = float64(i)
	}

	a := NewAnalyzer()
	p := a.Analyze(tr)

	if math.Abs(p.AveragePointSpacing-10) > 1e-9 {
		t.Errorf("spacing = %v, want 10", p.AveragePointSpacing)
	}
	if math.Abs(p.SamplingFrequency-1) > 1e-9 {
		t.Errorf("frequency = %v, want 1", p.SamplingFrequency)
	}
	if p.NoiseRatio != 0 {
		t.Errorf("noise ratio = %v, want 0", p.NoiseRatio)
	}
	if p.SignalGaps != 0 {
		t.Errorf("gaps = %d, want 0", p.SignalGaps)
	}
	if p.Consistency != 1 {
		t.Errorf("consistency = %v, want 1 for identical deltas", p.Consistency)
	}
	if math.Abs(p.Score-100) > 1e-9 {
		t.Errorf("score = %v, want 100", p.Score)
	}
}

func TestAnalyzeCountsGapsAndReversals(t *testing.T) {
	tr := &track.Track{
		// Deltas: +5, -5, +5, -5: every adjacent pair reverses.
		Elevations: []float64{100, 105, 100, 105, 100},
		Distances:  []float64{0, 10, 20, 30, 40},
		// One gap of 30s between samples 2 and 3.
		Times: []float64{0, 1, 2, 32, 33},
	}
	a := NewAnalyzer()
	p := a.Analyze(tr)
	if p.NoiseRatio != 1 {
		t.Errorf("noise ratio = %v, want 1 for pure oscillation", p.NoiseRatio)
	}
	if p.SignalGaps != 1 {
		t.Errorf("gaps = %d, want 1", p.SignalGaps)
	}
}

type fixedEstimator struct{ gain float64 }

func (f fixedEstimator) EstimateGain(*track.Track) float64 { return f.gain }

func TestAdjustPassesThroughGoodTraces(t *testing.T) {
	e := NewAdjusted(fixedEstimator{gain: 1000})
	p := Profile{Score: 75, SamplingFrequency: 0.1, NoiseRatio: 0.9}
	if got := e.Adjust(1000, p); got != 1000 {
		t.Errorf("Adjust = %v, want untouched 1000 at score 75", got)
	}
}

func TestAdjustAppliesBothRecoveryFamilies(t *testing.T) {
	e := NewAdjusted(fixedEstimator{gain: 1000})

	// Very sparse and very noisy: 1.20 * 1.15.
	p := Profile{Score: 20, SamplingFrequency: 0.2, NoiseRatio: 0.7}
	if got, want := e.Adjust(1000, p), 1000*1.20*1.15; math.Abs(got-want) > 1e-9 {
		t.Errorf("Adjust = %v, want %v", got, want)
	}

	// Mid-tier on both axes: 1.10 * 1.08.
	p = Profile{Score: 20, SamplingFrequency: 0.8, NoiseRatio: 0.4}
	if got, want := e.Adjust(1000, p), 1000*1.10*1.08; math.Abs(got-want) > 1e-9 {
		t.Errorf("Adjust = %v, want %v", got, want)
	}

	// Fast and clean but still low score: no multipliers apply.
	p = Profile{Score: 20, SamplingFrequency: 2.0, NoiseRatio: 0.1}
	if got := e.Adjust(1000, p); got != 1000 {
		t.Errorf("Adjust = %v, want 1000 when no factor matches", got)
	}
}

func TestEstimateGainUsesTrackProfile(t *testing.T) {
	// Sparse (0.01Hz), widely spaced, and oscillating: the score
	// lands well under the threshold and both recovery families fire.
	tr := &track.Track{
		Elevations: []float64{100, 110, 100},
		Distances:  []float64{0, 100, 200},
		Times:      []float64{0, 100, 200},
	}
	e := NewAdjusted(fixedEstimator{gain: 500})
	got := e.EstimateGain(tr)
	if want := 500 * 1.20 * 1.15; math.Abs(got-want) > 1e-9 {
		t.Errorf("EstimateGain = %v, want %v", got, want)
	}
}

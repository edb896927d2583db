package gain

import (
	"math"
	"testing"

	"github.com/rotblauer/vert/types/track"
)

func cleanRamp(n int) *track.Track {
	tr := &track.Track{
		Name:       "ramp.gpx",
		Elevations: make([]float64, n),
		Distances:  make([]float64, n),
		Times:      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		tr.Distances[i] = float64(i) * 10
		tr.Elevations[i] = 100 + float64(i)*0.2
		tr.Times[i] = float64(i) * 10
	}
	return tr
}

func TestVariantsAgreeOnCleanHighQualityTrack(t *testing.T) {
	// A clean steady climb at ideal spacing: no outliers to
	// interpolate, and the quality score clears the correction
	// threshold, so every variant should collapse to the baseline.
	tr := cleanRamp(1001)
	s := NewSuite(10)
	r := s.Estimate(tr)

	if r.Baseline <= 0 {
		t.Fatalf("baseline = %v, want positive", r.Baseline)
	}
	if r.QualityAdjusted != r.Baseline {
		t.Errorf("quality variant %v differs from baseline %v on a high-quality track", r.QualityAdjusted, r.Baseline)
	}
	if r.Combined != r.Baseline {
		t.Errorf("combined variant %v differs from baseline %v with no outliers", r.Combined, r.Baseline)
	}
}

func TestEstimateMatchesIndividualVariants(t *testing.T) {
	tr := cleanRamp(501)
	s := NewSuite(5)
	r := s.Estimate(tr)

	if got := s.Baseline(tr); got != r.Baseline {
		t.Errorf("Baseline = %v, Estimate.Baseline = %v", got, r.Baseline)
	}
	if got := s.QualityAdjusted(tr); got != r.QualityAdjusted {
		t.Errorf("QualityAdjusted = %v, Estimate.QualityAdjusted = %v", got, r.QualityAdjusted)
	}
	if got := s.Combined(tr); got != r.Combined {
		t.Errorf("Combined = %v, Estimate.Combined = %v", got, r.Combined)
	}
}

func TestCombinedToleratesSpikes(t *testing.T) {
	clean := cleanRamp(1001)
	spiked := clean.Copy()
	// A handful of isolated 50m spikes.
	for _, i := range []int{100, 300, 500, 700, 900} {
		spiked.Elevations[i] += 50
	}

	s := NewSuite(10)
	want := s.Combined(clean)
	got := s.Combined(spiked)

	if math.Abs(got-want)/want > 0.15 {
		t.Errorf("combined on spiked track = %v, clean = %v, spikes not suppressed", got, want)
	}
}

func TestCombinedLeavesOriginalTrackIntact(t *testing.T) {
	tr := cleanRamp(101)
	tr.Elevations[50] += 80
	before := tr.Copy()

	s := NewSuite(10)
	s.Combined(tr)

	for i := range tr.Elevations {
		if tr.Elevations[i] != before.Elevations[i] {
			t.Fatalf("Combined mutated input elevation at %d", i)
		}
	}
}

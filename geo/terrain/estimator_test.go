package terrain

import (
	"math"
	"testing"

	"github.com/rotblauer/vert/types/track"
)

func rampTrack(n int, spacing, gainPerStep float64) *track.Track {
	tr := &track.Track{
		Elevations: make([]float64, n),
		Distances:  make([]float64, n),
		Times:      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		tr.Distances[i] = float64(i) * spacing
		tr.Elevations[i] = 100 + float64(i)*gainPerStep
		tr.Times[i] = float64(i)
	}
	return tr
}

func TestClassifyByGainDensity(t *testing.T) {
	cases := []struct {
		gainPerStep float64 // over 10m steps, so density = gainPerStep*100 m/km
		want        string
	}{
		{0.05, "flat"},        // 5 m/km
		{0.2, "rolling"},      // 20 m/km
		{0.45, "hilly"},       // 45 m/km
		{0.9, "mountainous"},  // 90 m/km
	}
	for _, c := range cases {
		tr := rampTrack(1001, 10, c.gainPerStep)
		e := NewEstimator(10)
		if got := e.Classify(tr).Name; got != c.want {
			t.Errorf("Classify(%v m/km) = %q, want %q", c.gainPerStep*100, got, c.want)
		}
	}
}

func TestEstimateGainDegenerateTracks(t *testing.T) {
	e := NewEstimator(1)
	if g := e.EstimateGain(&track.Track{}); g != 0 {
		t.Errorf("empty track gain = %v, want 0", g)
	}
	one := &track.Track{Elevations: []float64{100}, Distances: []float64{0}, Times: []float64{0}}
	if g := e.EstimateGain(one); g != 0 {
		t.Errorf("single-sample track gain = %v, want 0", g)
	}
}

func TestDeadbandDiscardsSubThresholdOscillation(t *testing.T) {
	changes := []float64{0, 1, -1, 1, -1, 1, -1, 1, -1}
	filtered := deadband(changes, 3)
	gain := 0.0
	for _, c := range filtered {
		if c > 0 {
			gain += c
		}
	}
	if gain != 0 {
		t.Errorf("sub-threshold oscillation gain = %v, want 0", gain)
	}
}

func TestDeadbandCommitsSustainedClimb(t *testing.T) {
	// 10 steps of +1 against a 3m threshold: three 3m commits land,
	// the trailing 1m stays pending and is dropped.
	changes := []float64{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	filtered := deadband(changes, 3)
	gain := 0.0
	for _, c := range filtered {
		if c > 0 {
			gain += c
		}
	}
	if math.Abs(gain-9) > 1e-9 {
		t.Errorf("sustained climb gain = %v, want 9", gain)
	}
}

func TestEstimateGainOscillatingFlatTrackIsZero(t *testing.T) {
	// Dead-flat route with +-1m noise. Everything below the flat-class
	// deadband must vanish.
	n := 1001
	tr := &track.Track{
		Elevations: make([]float64, n),
		Distances:  make([]float64, n),
		Times:      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		tr.Distances[i] = float64(i) * 10
		tr.Elevations[i] = 100 + math.Sin(float64(i))
		tr.Times[i] = float64(i)
	}
	e := NewEstimator(10)
	if g := e.EstimateGain(tr); g != 0 {
		t.Errorf("noise-only flat track gain = %v, want 0", g)
	}
}

func TestEstimateGainDeterministic(t *testing.T) {
	tr := rampTrack(501, 10, 0.2)
	e := NewEstimator(2.5)
	first := e.EstimateGain(tr)
	for i := 0; i < 3; i++ {
		if got := e.EstimateGain(tr); got != first {
			t.Fatalf("run %d = %v, first run = %v", i, got, first)
		}
	}
}

func TestEstimateGainFlatSyntheticAccuracy(t *testing.T) {
	// 10km with 50m of real gain under +-0.5m jitter. Across a range
	// of processing intervals the estimate must land within the wide
	// accuracy band of the true figure.
	n := 1001
	official := 50.0
	tr := &track.Track{
		Elevations: make([]float64, n),
		Distances:  make([]float64, n),
		Times:      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		tr.Distances[i] = float64(i) * 10
		tr.Elevations[i] = 100 + official*float64(i)/float64(n-1) + 0.5*math.Sin(float64(i))
		tr.Times[i] = float64(i)
	}

	for _, interval := range []float64{1, 2.5, 5, 10} {
		e := NewEstimator(interval)
		got := e.EstimateGain(tr)
		accuracy := got / official * 100
		if accuracy < 80 || accuracy > 120 {
			t.Errorf("interval %v: gain %v, accuracy %.1f%%, want within [80,120]", interval, got, accuracy)
		}
	}
}

func TestEstimateGainLossSymmetricHill(t *testing.T) {
	// Up 200m then back down over 20km. Gain and loss should roughly
	// match each other.
	n := 2001
	tr := &track.Track{
		Elevations: make([]float64, n),
		Distances:  make([]float64, n),
		Times:      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		tr.Distances[i] = float64(i) * 10
		if i <= n/2 {
			tr.Elevations[i] = 100 + float64(i)*0.2
		} else {
			tr.Elevations[i] = 100 + float64(n-1-i)*0.2
		}
		tr.Times[i] = float64(i)
	}
	e := NewEstimator(10)
	gain, loss := e.EstimateGainLoss(tr)
	if gain < 150 || gain > 220 {
		t.Errorf("gain = %v, want near 200", gain)
	}
	if math.Abs(gain-loss) > 30 {
		t.Errorf("gain %v and loss %v should be near-symmetric", gain, loss)
	}
}

package terrain

import (
	"math"
	"testing"
)

func TestResampleLinearRamp(t *testing.T) {
	// 0..100m at irregular spacing, elevation = distance/10.
	distances := []float64{0, 7, 30, 55, 100}
	elevations := []float64{0, 0.7, 3.0, 5.5, 10.0}

	gridD, gridE := Resample(elevations, distances, 10)
	if len(gridD) != 11 {
		t.Fatalf("grid length = %d, want 11", len(gridD))
	}
	for i := range gridD {
		if want := float64(i) * 10; gridD[i] != want {
			t.Errorf("grid distance %d = %v, want %v", i, gridD[i], want)
		}
		if want := float64(i); math.Abs(gridE[i]-want) > 1e-9 {
			t.Errorf("grid elevation %d = %v, want %v", i, gridE[i], want)
		}
	}
}

func TestResampleEmptyAndZeroSpacing(t *testing.T) {
	if d, e := Resample(nil, nil, 10); d != nil || e != nil {
		t.Error("empty input should yield empty output")
	}
	if d, e := Resample([]float64{1}, []float64{0}, 0); d != nil || e != nil {
		t.Error("zero spacing should yield empty output")
	}
}

func TestMedianFilterKillsSingleSpike(t *testing.T) {
	data := []float64{10, 10, 10, 80, 10, 10, 10}
	got := MedianFilter(data, 3)
	for i, v := range got {
		if v != 10 {
			t.Errorf("sample %d = %v, want 10 after despiking", i, v)
		}
	}
}

func TestMedianFilterPreservesSustainedSlope(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5, 6}
	got := MedianFilter(data, 3)
	for i := 1; i < len(got)-1; i++ {
		if got[i] != data[i] {
			t.Errorf("interior sample %d = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestGaussianSmoothPreservesConstant(t *testing.T) {
	data := []float64{42, 42, 42, 42, 42, 42}
	got := GaussianSmooth(data, 4)
	for i, v := range got {
		if math.Abs(v-42) > 1e-9 {
			t.Errorf("sample %d = %v, want 42", i, v)
		}
	}
}

func TestGaussianSmoothAttenuatesOscillation(t *testing.T) {
	n := 200
	data := make([]float64, n)
	for i := range data {
		data[i] = 100 + 5*math.Sin(float64(i))
	}
	got := GaussianSmooth(data, 30)
	for i := 20; i < n-20; i++ {
		if math.Abs(got[i]-100) > 1 {
			t.Fatalf("sample %d = %v, oscillation not attenuated", i, got[i])
		}
	}
}

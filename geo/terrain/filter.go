package terrain

import (
	"math"
	"sort"
)

// Resample projects an elevation series onto a uniform distance grid
// at the given spacing, linearly interpolating between the original
// samples. The returned slices share a length. Spacing must be
// positive; empty input yields empty output.
func Resample(elevations, distances []float64, spacing float64) (gridDistances, gridElevations []float64) {
	if len(elevations) == 0 || len(distances) == 0 || spacing <= 0 {
		return nil, nil
	}
	total := distances[len(distances)-1]
	n := int(math.Ceil(total/spacing)) + 1

	gridDistances = make([]float64, 0, n)
	gridElevations = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		target := float64(i) * spacing
		if target > total {
			break
		}
		gridDistances = append(gridDistances, target)
		gridElevations = append(gridElevations, elevationAt(elevations, distances, target))
	}
	return gridDistances, gridElevations
}

func elevationAt(elevations, distances []float64, target float64) float64 {
	if target <= 0 {
		return elevations[0]
	}
	for i := 1; i < len(distances); i++ {
		if distances[i] >= target {
			d1, d2 := distances[i-1], distances[i]
			e1, e2 := elevations[i-1], elevations[i]
			if math.Abs(d2-d1) < 1e-10 {
				return e1
			}
			t := (target - d1) / (d2 - d1)
			return e1 + t*(e2-e1)
		}
	}
	return elevations[len(elevations)-1]
}

// MedianFilter replaces each sample with the median of a centered
// window, shrinking the window at the edges. Kills single-sample
// spikes without attenuating sustained slopes.
func MedianFilter(data []float64, window int) []float64 {
	result := make([]float64, 0, len(data))
	scratch := make([]float64, 0, window)

	for i := range data {
		start, end := windowBounds(i, window, len(data))
		scratch = append(scratch[:0], data[start:end+1]...)
		sort.Float64s(scratch)

		var median float64
		if len(scratch)%2 == 0 {
			median = (scratch[len(scratch)/2-1] + scratch[len(scratch)/2]) / 2.0
		} else {
			median = scratch[len(scratch)/2]
		}
		result = append(result, median)
	}
	return result
}

// GaussianSmooth convolves with a truncated Gaussian kernel of the
// given window size in samples, sigma = window/6. Weights renormalize
// at the edges where the window shrinks.
func GaussianSmooth(data []float64, window int) []float64 {
	result := make([]float64, 0, len(data))
	sigma := float64(window) / 6.0

	for i := range data {
		start, end := windowBounds(i, window, len(data))
		weightedSum, weightSum := 0.0, 0.0
		for j := start; j <= end; j++ {
			d := math.Abs(float64(j - i))
			w := math.Exp(-0.5 * math.Pow(d/sigma, 2))
			weightedSum += data[j] * w
			weightSum += w
		}
		result = append(result, weightedSum/weightSum)
	}
	return result
}

func windowBounds(i, window, n int) (start, end int) {
	start = 0
	if i >= window/2 {
		start = i - window/2
	}
	end = n - 1
	if i+window/2 < n {
		end = i + window/2
	}
	return start, end
}

package track

import (
	"errors"
	"fmt"
	"math"
)

var ErrEmptyTrack = errors.New("track: empty track")

// Track is a recorded path as parallel arrays.
// Elevations are meters; Distances are cumulative along-path meters,
// monotonically non-decreasing; Times are elapsed seconds since the
// first sample, monotonically non-decreasing. The three slices are
// always the same length.
//
// OfficialGain is the ground-truth cumulative elevation gain in
// meters, 0 meaning unknown/unvalidated. It comes from race
// organizers' published figures, keyed by lowercased filename.
type Track struct {
	Name         string
	Elevations   []float64
	Distances    []float64
	Times        []float64
	OfficialGain float64
}

// Validate rejects malformed tracks at the boundary so the estimators
// can assume well-formed input. Degenerate-but-well-formed tracks
// (single sample, flat elevation) pass; they produce neutral results
// downstream rather than errors.
func (t *Track) Validate() error {
	if len(t.Elevations) == 0 {
		return ErrEmptyTrack
	}
	if len(t.Distances) != len(t.Elevations) || len(t.Times) != len(t.Elevations) {
		return fmt.Errorf("track %s: mismatched array lengths: elevations=%d distances=%d times=%d",
			t.Name, len(t.Elevations), len(t.Distances), len(t.Times))
	}
	for i := 1; i < len(t.Distances); i++ {
		if t.Distances[i] < t.Distances[i-1] {
			return fmt.Errorf("track %s: distance regresses at sample %d", t.Name, i)
		}
		if t.Times[i] < t.Times[i-1] {
			return fmt.Errorf("track %s: time regresses at sample %d", t.Name, i)
		}
	}
	return nil
}

// TotalDistance is the cumulative distance of the last sample, meters.
func (t *Track) TotalDistance() float64 {
	if len(t.Distances) == 0 {
		return 0
	}
	return t.Distances[len(t.Distances)-1]
}

// TotalTime is the elapsed time of the last sample, seconds.
func (t *Track) TotalTime() float64 {
	if len(t.Times) == 0 {
		return 0
	}
	return t.Times[len(t.Times)-1]
}

// RawGain sums positive elevation deltas with no noise suppression.
// It overestimates badly on noisy traces; it exists to feed terrain
// classification and diagnostics, not to be reported as gain.
func (t *Track) RawGain() float64 {
	gain := 0.0
	for i := 1; i < len(t.Elevations); i++ {
		if d := t.Elevations[i] - t.Elevations[i-1]; d > 0 {
			gain += d
		}
	}
	return gain
}

// RawLoss sums negative elevation deltas, returned positive.
func (t *Track) RawLoss() float64 {
	loss := 0.0
	for i := 1; i < len(t.Elevations); i++ {
		if d := t.Elevations[i] - t.Elevations[i-1]; d < 0 {
			loss -= d
		}
	}
	return loss
}

// HasElevationVariation reports whether any sample strays more than
// tolerance meters from the first sample. Dead-flat traces cannot
// produce a meaningful accuracy ratio and get excluded from
// evaluation.
func (t *Track) HasElevationVariation(tolerance float64) bool {
	if len(t.Elevations) == 0 {
		return false
	}
	first := t.Elevations[0]
	for _, e := range t.Elevations {
		if math.Abs(e-first) > tolerance {
			return true
		}
	}
	return false
}

// Copy returns a deep copy. Estimator variants mutate elevation
// series; they work on copies so the shared corpus stays immutable.
func (t *Track) Copy() *Track {
	cp := &Track{
		Name:         t.Name,
		Elevations:   make([]float64, len(t.Elevations)),
		Distances:    make([]float64, len(t.Distances)),
		Times:        make([]float64, len(t.Times)),
		OfficialGain: t.OfficialGain,
	}
	copy(cp.Elevations, t.Elevations)
	copy(cp.Distances, t.Distances)
	copy(cp.Times, t.Times)
	return cp
}

// WithElevations returns a shallow clone sharing distances and times
// but carrying the given elevation series.
func (t *Track) WithElevations(elevations []float64) *Track {
	cp := *t
	cp.Elevations = elevations
	return &cp
}

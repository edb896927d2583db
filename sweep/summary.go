package sweep

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/rotblauer/vert/params"
)

// BandCounts buckets accuracy ratios into the nested tolerance bands.
// Bands nest: every tight hit is also a mid and wide hit.
type BandCounts struct {
	Tight   int // 98-102%
	Mid     int // 95-105%
	Wide    int // 90-110%
	Outside int // <80% or >120%
}

// VariantSummary aggregates one variant's accuracy ratios at one
// interval.
type VariantSummary struct {
	WeightedScore int
	Bands         BandCounts
	Median        float64
	Worst         float64
}

// IntervalSummary is the per-interval evaluation record. Immutable
// once computed; the harness owns construction.
type IntervalSummary struct {
	Interval float64
	Key      string // two-decimal interval key

	Baseline IntervalVariant
	Quality  IntervalVariant
	Combined IntervalVariant
}

// IntervalVariant pairs a variant name with its summary.
type IntervalVariant struct {
	Name string
	VariantSummary
}

func countBands(accuracies []float64) BandCounts {
	b := BandCounts{}
	for _, a := range accuracies {
		if a >= params.BandTightLow && a <= params.BandTightHigh {
			b.Tight++
		}
		if a >= params.BandMidLow && a <= params.BandMidHigh {
			b.Mid++
		}
		if a >= params.BandWideLow && a <= params.BandWideHigh {
			b.Wide++
		}
		if a < params.BandFailLow || a > params.BandFailHigh {
			b.Outside++
		}
	}
	return b
}

// weightedScore rewards precision tiers and penalizes gross misses.
// Each ratio counts once, at the tightest band it lands in.
func weightedScore(b BandCounts) int {
	return params.ScoreWeightTight*b.Tight +
		params.ScoreWeightMid*(b.Mid-b.Tight) +
		params.ScoreWeightWide*(b.Wide-b.Mid) -
		params.ScoreWeightOutside*b.Outside
}

// worstAccuracy returns the ratio farthest from 100%. Deviations
// compare at milli-percent integer precision; finer differences are
// deliberate ties.
func worstAccuracy(accuracies []float64) float64 {
	worst := 0.0
	worstKey := -1
	for _, a := range accuracies {
		key := int(math.Abs(a-100.0) * 1000)
		if key > worstKey {
			worstKey = key
			worst = a
		}
	}
	return worst
}

// summarize reduces one group of accuracy ratios. An empty group
// yields the all-zero summary.
func summarize(accuracies []float64) VariantSummary {
	if len(accuracies) == 0 {
		return VariantSummary{}
	}
	bands := countBands(accuracies)
	median, err := stats.Median(accuracies)
	if err != nil {
		median = 0
	}
	return VariantSummary{
		WeightedScore: weightedScore(bands),
		Bands:         bands,
		Median:        median,
		Worst:         worstAccuracy(accuracies),
	}
}

/*
Package sweep runs the comparative evaluation harness.

A sweep crosses every processing interval with every evaluable corpus
track, computes the three estimator variants for each pair, and
aggregates accuracy ratios into per-interval summaries ranked by the
combined variant's weighted score.

The cross product is embarrassingly parallel: work items share only
the read-only corpus, workers return self-contained accuracy tuples,
and grouping happens as a sequential reduction after the pool drains.
*/
package sweep

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/rotblauer/vert/corpus"
	"github.com/rotblauer/vert/geo/gain"
	"github.com/rotblauer/vert/params"
	"github.com/rotblauer/vert/types/track"
	"github.com/shopspring/decimal"
)

// Harness evaluates estimator variants across an interval sweep.
type Harness struct {
	Config *params.SweepConfig
}

func NewHarness() *Harness {
	return &Harness{Config: params.DefaultSweepConfig}
}

type workItem struct {
	interval float64
	key      string
	track    *track.Track
}

// accuracyTuple is one work item's output: accuracy percentages per
// variant against the track's official gain.
type accuracyTuple struct {
	key      string
	track    string
	baseline float64
	quality  float64
	combined float64
}

// IntervalKey renders an interval at the two-decimal precision used
// for grouping and reporting.
func IntervalKey(interval float64) string {
	return decimal.NewFromFloat(interval).Round(2).StringFixed(2)
}

// Evaluate runs the full sweep and returns summaries ranked by
// descending combined weighted score. Deterministic for a given
// corpus and configuration regardless of worker scheduling.
func (h *Harness) Evaluate(ctx context.Context, tracks []*track.Track) []IntervalSummary {
	evaluable := h.filterCorpus(tracks)
	intervals := h.Config.Intervals()

	items := make([]workItem, 0, len(intervals)*len(evaluable))
	for _, interval := range intervals {
		key := IntervalKey(interval)
		for _, t := range evaluable {
			items = append(items, workItem{interval: interval, key: key, track: t})
		}
	}

	slog.Info("Sweep starting",
		"tracks", len(evaluable), "intervals", len(intervals), "items", len(items),
		"workers", h.Config.Workers)

	tuples := h.runPool(ctx, items)
	summaries := h.aggregate(intervals, tuples)

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Combined.WeightedScore != summaries[j].Combined.WeightedScore {
			return summaries[i].Combined.WeightedScore > summaries[j].Combined.WeightedScore
		}
		return summaries[i].Interval < summaries[j].Interval
	})
	return summaries
}

func (h *Harness) filterCorpus(tracks []*track.Track) []*track.Track {
	keep := corpus.Evaluable(h.Config.FlatElevationTolerance)
	dedupe := corpus.NewDedupeFunc()
	out := make([]*track.Track, 0, len(tracks))
	for _, t := range tracks {
		if keep(t) && dedupe(t) {
			out = append(out, t)
		}
	}
	return out
}

func (h *Harness) runPool(ctx context.Context, items []workItem) []accuracyTuple {
	meter := newTickSweepMeter(10*time.Second, uint64(len(items)))
	defer meter.stop()

	tuples := make([]accuracyTuple, 0, len(items))
	results := make(chan accuracyTuple)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for r := range results {
			tuples = append(tuples, r)
		}
	}()

	feed := make(chan workItem)
	workers := h.Config.Workers
	if workers < 1 {
		workers = 1
	}
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range feed {
				suite := gain.NewSuite(item.interval)
				r := suite.Estimate(item.track)
				official := item.track.OfficialGain
				results <- accuracyTuple{
					key:      item.key,
					track:    item.track.Name,
					baseline: r.Baseline / official * 100,
					quality:  r.QualityAdjusted / official * 100,
					combined: r.Combined / official * 100,
				}
				meter.mark()
			}
		}()
	}

	for _, item := range items {
		select {
		case <-ctx.Done():
			// Drain what is in flight; a canceled sweep still reports
			// the completed portion.
			close(feed)
			wg.Wait()
			close(results)
			<-collected
			return tuples
		case feed <- item:
		}
	}
	close(feed)
	wg.Wait()
	close(results)
	<-collected
	return tuples
}

// aggregate groups tuples by interval key and reduces each group.
// Tuples arrive in pool-completion order; groups re-sort by track
// name so worst-accuracy tie-breaks do not depend on scheduling.
func (h *Harness) aggregate(intervals []float64, tuples []accuracyTuple) []IntervalSummary {
	grouped := make(map[string][]accuracyTuple, len(intervals))
	for _, t := range tuples {
		grouped[t.key] = append(grouped[t.key], t)
	}

	summaries := make([]IntervalSummary, 0, len(intervals))
	for _, interval := range intervals {
		key := IntervalKey(interval)
		group := grouped[key]
		sort.Slice(group, func(i, j int) bool { return group[i].track < group[j].track })

		baseline := make([]float64, 0, len(group))
		quality := make([]float64, 0, len(group))
		combined := make([]float64, 0, len(group))
		for _, t := range group {
			baseline = append(baseline, t.baseline)
			quality = append(quality, t.quality)
			combined = append(combined, t.combined)
		}

		summaries = append(summaries, IntervalSummary{
			Interval: interval,
			Key:      key,
			Baseline: IntervalVariant{Name: gain.VariantBaseline, VariantSummary: summarize(baseline)},
			Quality:  IntervalVariant{Name: gain.VariantQuality, VariantSummary: summarize(quality)},
			Combined: IntervalVariant{Name: gain.VariantCombined, VariantSummary: summarize(combined)},
		})
	}
	return summaries
}

// Optimum returns the summary whose variant score is highest, using
// the selector to pick the variant. Ties resolve to the smallest
// interval.
func Optimum(summaries []IntervalSummary, variant func(IntervalSummary) IntervalVariant) (IntervalSummary, bool) {
	if len(summaries) == 0 {
		return IntervalSummary{}, false
	}
	best := summaries[0]
	for _, s := range summaries[1:] {
		sv, bv := variant(s), variant(best)
		if sv.WeightedScore > bv.WeightedScore ||
			(sv.WeightedScore == bv.WeightedScore && s.Interval < best.Interval) {
			best = s
		}
	}
	return best, true
}

// Variant selectors for Optimum.
func SelectBaseline(s IntervalSummary) IntervalVariant { return s.Baseline }
func SelectQuality(s IntervalSummary) IntervalVariant  { return s.Quality }
func SelectCombined(s IntervalSummary) IntervalVariant { return s.Combined }

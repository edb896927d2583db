package sweep

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/vert/common"
)

// tickSweepMeter logs work-item throughput on a ticker while the
// worker pool runs. Progress reads are racy and approximate.
type tickSweepMeter struct {
	interval time.Duration
	started  time.Time
	ticker   *time.Ticker
	total    uint64
	nn       atomic.Uint64
	reg      metrics.Registry
	count    metrics.Counter
	meter    metrics.Meter
}

func newTickSweepMeter(interval time.Duration, total uint64) *tickSweepMeter {
	// Enable metrics package.
	// Won't work without this global setting.
	metrics.Enabled = true

	reg := metrics.NewRegistry()
	rl := &tickSweepMeter{
		reg:      reg,
		interval: interval,
		started:  time.Now(),
		total:    total,
		nn:       atomic.Uint64{},
		count:    metrics.NewCounter(),
		meter:    metrics.NewMeter(),
	}

	if err := reg.Register("item.count", rl.count); err != nil {
		panic(err)
	}
	if err := reg.Register("item.meter", rl.meter); err != nil {
		panic(err)
	}
	rl.nn.Store(0)
	go rl.run()
	return rl
}

func (rl *tickSweepMeter) mark() {
	rl.nn.Add(1)
	rl.count.Inc(1)
	rl.meter.Mark(1)
}

func (rl *tickSweepMeter) run() {
	rl.ticker = time.NewTicker(rl.interval)
	for range rl.ticker.C {
		rl.log()
	}
}

func (rl *tickSweepMeter) log() {
	snap := rl.meter.Snapshot()
	done := rl.nn.Load()
	pct := 0.0
	if rl.total > 0 {
		pct = float64(done) / float64(rl.total) * 100
	}
	slog.Info("Sweep progress", "n", humanize.Comma(int64(done)),
		"total", humanize.Comma(int64(rl.total)),
		"pct", common.DecimalToFixed(pct, 1),
		"ips", common.DecimalToFixed(snap.Rate1(), 0),
		"running", time.Since(rl.started).Round(time.Second))
}

func (rl *tickSweepMeter) stop() {
	if rl == nil || rl.ticker == nil {
		return
	}
	rl.ticker.Stop()
	rl.meter.Stop()
}

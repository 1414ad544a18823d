package stream

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/navixracing/telemd/common"
)

// Meter logs record/byte throughput at an interval while a long decode
// runs (session imports, big lap traces). Mark it per record; Stop it
// when the stream closes.
type Meter struct {
	label     string
	started   time.Time
	ticker    *time.Ticker
	count     metrics.Counter
	size      metrics.Counter
	countRate metrics.Meter
	sizeRate  metrics.Meter
}

func NewMeter(label string, interval time.Duration) *Meter {
	// The metrics package is inert without this global switch.
	metrics.Enabled = true

	if interval <= 0 {
		interval = 30 * time.Second
	}

	m := &Meter{
		label:     label,
		started:   time.Now(),
		count:     metrics.NewCounter(),
		size:      metrics.NewCounter(),
		countRate: metrics.NewMeter(),
		sizeRate:  metrics.NewMeter(),
	}
	m.ticker = time.NewTicker(interval)
	go func() {
		for range m.ticker.C {
			m.log()
		}
	}()
	return m
}

func (m *Meter) Mark(size int) {
	m.count.Inc(1)
	m.size.Inc(int64(size))
	m.countRate.Mark(1)
	m.sizeRate.Mark(int64(size))
}

func (m *Meter) log() {
	countSnap := m.countRate.Snapshot()
	sizeSnap := m.sizeRate.Snapshot()
	slog.Info("Read records", "label", m.label,
		"n", humanize.Comma(countSnap.Count()),
		"rps", common.DecimalToFixed(countSnap.Rate1(), 0),
		"bps", humanize.Bytes(uint64(sizeSnap.Rate1())),
		"total.bytes", humanize.Bytes(uint64(m.size.Snapshot().Count())),
		"running", time.Since(m.started).Round(time.Second))
}

func (m *Meter) Stop() {
	if m == nil || m.ticker == nil {
		return
	}
	m.ticker.Stop()
	m.countRate.Stop()
	m.sizeRate.Stop()
	m.log()
}

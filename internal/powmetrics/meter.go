// Package powmetrics tracks the miner's hashrate and reports it, wired to
// an InfluxDB client for operators who want it exported.
package powmetrics

import (
	"math"
	"sync/atomic"
	"time"
)

// Meter is a decaying-average rate counter, self-contained (no external
// metrics registry).
type Meter struct {
	total    int64
	rate1    atomic.Uint64 // float64 bits of the current 1-minute rate estimate
	lastTick time.Time
	lastMark int64
}

// NewMeter creates a meter with its decay clock starting now.
func NewMeter() *Meter {
	return &Meter{lastTick: time.Now()}
}

// Mark records n additional events (typically hash attempts).
func (m *Meter) Mark(n int64) {
	atomic.AddInt64(&m.total, n)
}

// Count returns the lifetime total.
func (m *Meter) Count() int64 {
	return atomic.LoadInt64(&m.total)
}

// Tick recomputes the 1-minute rate from elapsed wall time since the last
// Tick call. Call it periodically (the mining worker does this right after
// each batched Mark, every 2^15 hash attempts); Mark never blocks on it.
func (m *Meter) Tick() float64 {
	now := time.Now()
	elapsed := now.Sub(m.lastTick).Seconds()
	if elapsed <= 0 {
		return m.Rate1()
	}
	total := atomic.LoadInt64(&m.total)
	instant := float64(total-m.lastMark) / elapsed

	// Exponentially weighted moving average with a one-minute time constant,
	// the same decay shape rcrowley/go-metrics uses for Meter.Rate1.
	const tau = 60.0
	weight := 1 - math.Exp(-elapsed/tau)
	prev := m.Rate1()
	next := prev + weight*(instant-prev)

	m.rate1.Store(math.Float64bits(next))
	m.lastTick = now
	m.lastMark = total
	return next
}

// Rate1 returns the most recently computed 1-minute rate estimate.
func (m *Meter) Rate1() float64 {
	return math.Float64frombits(m.rate1.Load())
}

package gx2

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the pool's prometheus instrumentation. Registration is
// optional — a pool created without [WithMetricsRegisterer] still updates
// these collectors, it simply never exposes them, mirroring rclone's
// pattern of wiring prometheus/client_golang through an injected
// Registerer rather than the global default registry.
type metrics struct {
	liveWords        prometheus.Gauge
	leaseOutstanding prometheus.Gauge
	freelistDepth    prometheus.Gauge
	wrapTotal        prometheus.Counter
	leaseWaitTotal   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		liveWords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gx2_ring_live_words",
			Help: "Words currently live in the command-buffer ring (allocated but not yet retired).",
		}),
		leaseOutstanding: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gx2_lease_outstanding",
			Help: "1 if a pool lease is currently outstanding, 0 otherwise.",
		}),
		freelistDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gx2_descriptor_freelist_depth",
			Help: "Approximate number of descriptors currently on the free-list.",
		}),
		wrapTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gx2_ring_wrap_total",
			Help: "Number of times the ring has wrapped around, skipping a trailing gap.",
		}),
		leaseWaitTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gx2_lease_wait_total",
			Help: "Number of times AllocateCommandBuffer blocked waiting for a GPU retirement.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.liveWords, m.leaseOutstanding, m.freelistDepth, m.wrapTotal, m.leaseWaitTotal)
	}

	return m
}

func (m *metrics) ringWrapped() {
	m.wrapTotal.Inc()
}

func (m *metrics) setLeaseOutstanding(leased bool) {
	if leased {
		m.leaseOutstanding.Set(1)
	} else {
		m.leaseOutstanding.Set(0)
	}
}

func (m *metrics) leaseWaited() {
	m.leaseWaitTotal.Inc()
}

func (m *metrics) observeRing(head, tail, capacity int) {
	if tail == sentinelTail {
		m.liveWords.Set(0)
		return
	}
	live := head - tail
	if live < 0 {
		live += capacity
	}
	m.liveWords.Set(float64(live))
}

func (m *metrics) observeFreeList(depth int64) {
	m.freelistDepth.Set(float64(depth))
}

package pwhash

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one encoder outcome counter.
type MetricID uint16

const (
	// MetricEncodeSuccess counts credentials hashed successfully.
	MetricEncodeSuccess MetricID = iota
	// MetricEncodeRejected counts encode calls rejected before hashing.
	MetricEncodeRejected
	// MetricVerifySuccess counts primary-backend verifications that matched.
	MetricVerifySuccess
	// MetricVerifyFailure counts primary-backend verifications that did not match.
	MetricVerifyFailure
	// MetricVerifyRejected counts verify calls short-circuited to false
	// before reaching any backend.
	MetricVerifyRejected
	// MetricLegacyVerifySuccess counts bcrypt-path verifications that matched.
	MetricLegacyVerifySuccess
	// MetricLegacyVerifyFailure counts bcrypt-path verifications that did not match.
	MetricLegacyVerifyFailure
	// MetricRehashNeeded counts needs-rehash checks that reported stale parameters.
	MetricRehashNeeded
	// MetricRehashCurrent counts needs-rehash checks that reported current parameters.
	MetricRehashCurrent
	// MetricEncodeLatency indexes the encode wall-clock histogram.
	MetricEncodeLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of padded atomic counters plus an optional
// encode-latency histogram. A nil or disabled Metrics is a no-op on
// every method, so call sites never branch.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histograms.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics builds a Metrics set from config. Latency histograms are
// only recorded when both flags are set.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records an encode duration into the latency histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricEncodeLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current counter for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies all counters and, when enabled, the latency histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricEncodeLatency].buckets[i])
		}
		s.Histograms[MetricEncodeLatency] = buckets
	}

	return s
}

// bucketIndex maps an encode duration to a histogram bucket. Buckets are
// sized for memory-hard hashing, where tens to hundreds of milliseconds
// per operation is the expected operating range.
func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 25:
		return 0
	case ms <= 50:
		return 1
	case ms <= 100:
		return 2
	case ms <= 250:
		return 3
	case ms <= 500:
		return 4
	case ms <= 1000:
		return 5
	case ms <= 2500:
		return 6
	default:
		return 7
	}
}

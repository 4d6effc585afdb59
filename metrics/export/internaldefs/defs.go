package internaldefs

import (
	"github.com/kyritz/pwhash"
)

// CounterDef binds a pwhash counter to its exported name and help text.
type CounterDef struct {
	ID   pwhash.MetricID
	Name string
	Help string
}

// HistogramDef binds a pwhash histogram to its exported name and help text.
type HistogramDef struct {
	ID   pwhash.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported pwhash counter in render order.
var CounterDefs = []CounterDef{
	{ID: pwhash.MetricEncodeSuccess, Name: "pwhash_encode_success_total", Help: "Credentials hashed successfully."},
	{ID: pwhash.MetricEncodeRejected, Name: "pwhash_encode_rejected_total", Help: "Encode calls rejected before hashing."},
	{ID: pwhash.MetricVerifySuccess, Name: "pwhash_verify_success_total", Help: "Primary-backend verifications that matched."},
	{ID: pwhash.MetricVerifyFailure, Name: "pwhash_verify_failure_total", Help: "Primary-backend verifications that did not match."},
	{ID: pwhash.MetricVerifyRejected, Name: "pwhash_verify_rejected_total", Help: "Verify calls short-circuited to false before any backend."},
	{ID: pwhash.MetricLegacyVerifySuccess, Name: "pwhash_legacy_verify_success_total", Help: "Legacy bcrypt verifications that matched."},
	{ID: pwhash.MetricLegacyVerifyFailure, Name: "pwhash_legacy_verify_failure_total", Help: "Legacy bcrypt verifications that did not match."},
	{ID: pwhash.MetricRehashNeeded, Name: "pwhash_rehash_needed_total", Help: "Needs-rehash checks that found stale parameters."},
	{ID: pwhash.MetricRehashCurrent, Name: "pwhash_rehash_current_total", Help: "Needs-rehash checks that found current parameters."},
}

// HistogramDefs lists every exported pwhash histogram in render order.
var HistogramDefs = []HistogramDef{
	{ID: pwhash.MetricEncodeLatency, Name: "pwhash_encode_latency_seconds", Help: "Encode latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, sized for
// memory-hard hashing latencies.
var HistogramBounds = []string{
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"1",
	"2.5",
	"+Inf",
}

// HistogramBoundSuffix holds instrument-name-safe forms of the bounds.
var HistogramBoundSuffix = []string{
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"1",
	"2_5",
	"inf",
}

// NormalizeBuckets copies a raw snapshot slice into a fixed-size array,
// tolerating short or missing slices.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// both exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}

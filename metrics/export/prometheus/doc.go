// Package prometheus provides Prometheus collectors for pwhash metrics.
//
// [NewPrometheusExporter] accepts a [pwhash.Encoder] and exposes an
// [net/http.Handler] that renders all pwhash counters and the encode
// latency histogram in Prometheus text exposition format. Counter names
// are prefixed pwhash_*_total; the histogram is
// pwhash_encode_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount
//     the Handler.
//   - Mutate encoder state.
package prometheus

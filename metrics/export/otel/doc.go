// Package otel provides OpenTelemetry metric exporter bindings for
// pwhash counters and the encode latency histogram.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for
// each pwhash counter and Int64ObservableGauge per histogram bucket. A
// single callback reads [pwhash.Encoder.MetricsSnapshot] on each
// collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate encoder state.
package otel

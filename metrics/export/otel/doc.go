// Package otel exposes goStats counters as OpenTelemetry observable instruments.
//
// Monotonic counters become Int64ObservableCounter and rolling counters become
// Int64ObservableGauge. A single callback reads the registry once per
// collection. Instrument names come from internaldefs.
//
// # What this package must NOT do
//
//   - Create or own a MeterProvider; callers pass a metric.Meter.
//   - Mutate registry state.
package otel

// Package goStats provides the in-process request and delivery counters of a
// notifications plugin, with flat and nested JSON snapshots.
//
// A [Registry] owns one counter per entry of a fixed catalog. Monotonic
// counters count since process start. Rolling counters report the number of
// events in the most recently completed window and reset on their own.
// Registry methods are safe to call from multiple goroutines after
// [NewRegistry] returns.
//
// # Architecture boundaries
//
// goStats is the public surface. It exposes [Registry], [Reporter], [Config],
// the counter types, and the catalog. Snapshot queueing lives under internal/
// and is never exported. Exporters (Prometheus, OpenTelemetry, HTTP JSON),
// sinks (Redis), and HTTP middleware are separate packages that import
// goStats and never the other way round.
//
// # What this package must NOT do
//
//   - Perform network I/O. Publishing is delegated to a [SnapshotSink].
//   - Register metrics after construction. The catalog is fixed at startup and
//     name collisions are construction errors.
//   - Import any sub-package that re-imports goStats (no import cycles).
//
// # Performance contract
//
// Inc on a monotonic counter is a single atomic add on a cache-line padded
// word and does not allocate. Rolling counters take one uncontended mutex.
// Snapshots allocate and are meant for scrape and report paths only.
package goStats

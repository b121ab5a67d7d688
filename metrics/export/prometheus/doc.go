// Package prometheus exposes goStats counters through client_golang.
//
// [PrometheusExporter] is a prometheus.Collector that reads the registry on
// every scrape. Monotonic counters are exported as Prometheus counters and
// rolling counters as gauges, since a rolling value goes down when a window
// closes. Names come from internaldefs.
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry; callers register the
//     collector or mount [PrometheusExporter.Handler].
//   - Mutate registry state.
package prometheus

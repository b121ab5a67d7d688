// Package internaldefs maps the goStats catalog onto exporter-safe metric
// names shared by the Prometheus and OTel exporters.
//
// Catalog names use dots between segments; exporters need [a-zA-Z0-9_]. Both
// exporters read [Defs] so a metric is exported under the same name
// everywhere. Changes here affect all exporters simultaneously.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs

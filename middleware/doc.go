// Package middleware adapts goStats to net/http handlers.
//
// # Middleware
//
//   - [Instrument] counts requests and response statuses for one endpoint.
//   - [RequireStatsReader] guards the stats endpoint with a scoped bearer token.
//
// [WriteError] is the matching error responder: it classifies an error, counts
// it and writes the status the plugin maps that class to.
//
// # What this package must NOT do
//
//   - Render the stats document itself (see metrics/export/jsonstats).
//   - Decide token validity beyond what jwt.Manager reports.
package middleware

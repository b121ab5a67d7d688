// Package internal contains helpers that are private to goStats.
//
// # Sub-packages
//
//   - dispatch: bounded async queue feeding snapshots to a sink
//
// # What this package must NOT do
//
//   - Export types that appear in the public goStats API.
//   - Be imported by any package outside the goStats module.
package internal

// Package dispatch implements the bounded async queue behind the snapshot reporter.
//
// # Components
//
//   - [Dispatcher] buffers items for a single consumer goroutine with drop-if-full or
//     block-if-full semantics.
//   - [Handler] is the consumer callback; it runs on the dispatcher goroutine only.
//
// # Architecture boundaries
//
// This package owns buffering and delivery order. It does not know what a snapshot is,
// and it never retries a failed handler: the caller decides what a failure means.
package dispatch

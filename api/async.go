// File: api/async.go
// Author: momentics <momentics@gmail.com>
//
// Asynchronous I/O contract: suspension-based read/write over a
// non-blocking handle, with a selection-key abstraction for registering
// readiness interest with an external event loop.

package api

import "context"

// InterestOps is a bitmask of readiness directions a selection key is
// interested in.
type InterestOps uint8

const (
	InterestRead InterestOps = 1 << iota
	InterestWrite
)

// SelectionKey is one registration of readiness interest with an event
// loop. A key belongs to exactly one handle and one loop.
type SelectionKey interface {
	// Interest returns the currently armed ops.
	Interest() InterestOps

	// SetInterest replaces the armed ops.
	SetInterest(ops InterestOps) error

	// Ready yields the ops that became ready. Notifications are
	// level-style: consumers retry the operation and re-arm on
	// would-block rather than trusting a single wakeup.
	Ready() <-chan InterestOps

	// Cancel withdraws the registration. Idempotent.
	Cancel() error
}

// AsyncReadable reads with cooperative suspension. The calling
// goroutine parks until some data is available; the underlying thread
// is never spun or blocked on the handle.
type AsyncReadable interface {
	// ReadInto suspends until some data is available, then returns the
	// count actually read, which may be less than len(buf).
	ReadInto(ctx context.Context, buf []byte) (int, error)
}

// AsyncWriteable writes with cooperative suspension.
type AsyncWriteable interface {
	// WriteAllFrom suspends until all of buf is written or EOF is
	// reached, returning the count written before EOF. The count may be
	// less than len(buf) only on EOF.
	WriteAllFrom(ctx context.Context, buf []byte) (int, error)
}

// AsyncStream is a full-duplex suspension-based stream.
type AsyncStream interface {
	AsyncReadable
	AsyncWriteable

	// Key exposes the readiness registration for callers integrating a
	// loop of their own.
	Key() SelectionKey
}

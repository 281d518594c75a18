// File: api/result.go
// Author: momentics <momentics@gmail.com>
//
// BlockingResult: the tagged numeric result returned by every data-moving
// call that may legitimately not complete yet.

package api

import "fmt"

// BlockingResult is a signed 64-bit count with reserved negative sentinels.
// Any value >= 0 is a successful byte/unit count. A caller must never
// interpret a negative value as a count.
type BlockingResult int64

const (
	// WouldBlock signals that a non-blocking handle cannot make progress
	// right now. It is a result, never an error.
	WouldBlock BlockingResult = -1

	// WouldBlockSecondary is reserved for layered protocols (e.g. TLS)
	// that have two directions of blocking: the layer may need to write
	// before the caller's read can proceed, or vice versa.
	WouldBlockSecondary BlockingResult = -2

	// DidntBlock is success with no meaningful count.
	DidntBlock BlockingResult = 0
)

// Transferred wraps a non-negative count as a BlockingResult.
func Transferred(n int) BlockingResult {
	if n < 0 {
		panic(fmt.Sprintf("api: Transferred called with negative count %d", n))
	}
	return BlockingResult(n)
}

// IsSuccess reports whether the result carries a count.
func (r BlockingResult) IsSuccess() bool { return r >= 0 }

// Blocked reports whether the result is one of the blocking sentinels.
func (r BlockingResult) Blocked() bool {
	return r == WouldBlock || r == WouldBlockSecondary
}

// Count returns the transferred count. It panics if the result is a
// blocking sentinel.
func (r BlockingResult) Count() int64 {
	if r < 0 {
		panic("api: Count called on a blocking sentinel")
	}
	return int64(r)
}

// EnsureNonBlock unwraps the count of a result obtained from a
// blocking-mode handle. A blocking handle must never observe a
// would-block sentinel; seeing one is an internal contract violation,
// not a recoverable condition, so EnsureNonBlock panics.
func (r BlockingResult) EnsureNonBlock() int64 {
	if r < 0 {
		panic(fmt.Sprintf("api: blocking-mode handle yielded would-block sentinel %d", int64(r)))
	}
	return int64(r)
}

func (r BlockingResult) String() string {
	switch r {
	case WouldBlock:
		return "WouldBlock"
	case WouldBlockSecondary:
		return "WouldBlockSecondary"
	default:
		return fmt.Sprintf("Transferred(%d)", int64(r))
	}
}

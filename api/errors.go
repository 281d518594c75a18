// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Closed error taxonomy for the runtime. OS error codes are translated
// into these kinds at the point of the failing call; anything without a
// specific mapping surfaces as *OSError carrying the raw code.

package api

import (
	"errors"
	"fmt"
	"syscall"
)

// Sentinel error kinds. Would-block is deliberately absent: it is a
// BlockingResult, never an error.
var (
	// ErrClosed reports an operation attempted on a closed handle.
	ErrClosed = errors.New("handle is closed")

	// ErrNotFound reports a missing file or address.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists reports a conflicting existing resource.
	ErrAlreadyExists = errors.New("already exists")

	// ErrIO reports a generic transfer failure.
	ErrIO = errors.New("input/output error")

	// ErrNotSupported reports a usage error: the operation is not valid
	// for the handle's kind (e.g. recvfrom on a connection-oriented socket).
	ErrNotSupported = errors.New("operation not supported")

	// ErrTimeout reports expiry of an explicit operation timeout.
	ErrTimeout = errors.New("operation timed out")
)

// OSError is the catch-all for platform error codes no call-specific
// mapping claimed. It always carries the raw code so callers get
// actionable information even for unmapped conditions.
type OSError struct {
	Call  string
	Errno syscall.Errno
}

func (e *OSError) Error() string {
	return fmt.Sprintf("%s: os error %d (%v)", e.Call, int(e.Errno), error(e.Errno))
}

// Unwrap exposes the raw errno to errors.Is.
func (e *OSError) Unwrap() error { return e.Errno }

// NewOSError wraps a raw platform code for the named call.
func NewOSError(call string, errno syscall.Errno) *OSError {
	return &OSError{Call: call, Errno: errno}
}

// File: sock/errno.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral error translation. The per-errno predicates
// (isEINTR, isWouldBlock, ...) live in the platform files.

package sock

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/momentics/hioload-io/api"
)

// mapSysErr translates a raw platform error into the closed taxonomy.
// Codes without a specific mapping surface as *api.OSError carrying the
// raw value.
func mapSysErr(call string, err error) error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return fmt.Errorf("%s: %w", call, err)
	}
	switch {
	case isClosedErrno(errno):
		return fmt.Errorf("%s: %w", call, api.ErrClosed)
	case errno == syscall.ENOENT:
		return fmt.Errorf("%s: %w", call, api.ErrNotFound)
	case errno == syscall.EEXIST:
		return fmt.Errorf("%s: %w", call, api.ErrAlreadyExists)
	case errno == syscall.EIO:
		return fmt.Errorf("%s: %w (code %d)", call, api.ErrIO, int(errno))
	default:
		return api.NewOSError(call, errno)
	}
}

// PeerClosed reports whether err (raw or already mapped) means the
// remote end tore the connection down: the EOF condition for send
// loops.
func PeerClosed(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	return isPeerClosedErrno(errno)
}

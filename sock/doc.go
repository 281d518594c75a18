// Package sock
// Author: momentics <momentics@gmail.com>
//
// The per-platform BSD socket abstraction. One Socket owns exactly one
// OS handle: a small-integer file descriptor on Linux, an opaque SOCKET
// handle on Windows. Both present the identical contract: lifecycle
// (factory -> open -> idempotent close), connect/bind/listen/accept,
// recv/send variants speaking the api.BlockingResult protocol, shutdown
// and typed option access.
//
// The syscall discipline is uniform: EINTR is absorbed by Retry and
// never surfaces; EAGAIN/EWOULDBLOCK becomes the WouldBlock result on
// non-blocking handles and is a fatal contract violation on blocking
// ones; every other platform code is translated through the closed
// error taxonomy in api, with unmapped codes surfacing as *api.OSError.
package sock

// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral event reactor interface for cross-platform IO
// readiness multiplexing.

package reactor

// Interest is a bitmask of readiness directions.
type Interest uint32

const (
	ReadReady Interest = 1 << iota
	WriteReady
	// ErrorReady is delivered, never registered: error/hangup conditions
	// are always reported.
	ErrorReady
)

// Event is one readiness notification returned by Wait.
type Event struct {
	// Fd is the file descriptor (epoll) or SOCKET handle (Windows).
	Fd uintptr

	// Ready holds the directions that became ready.
	Ready Interest

	// UserData is the opaque value supplied at registration.
	UserData uintptr
}

// EventReactor defines reactor operations across OS platforms.
type EventReactor interface {
	// Register adds an FD (epoll) or HANDLE (Windows) with the given
	// interest set.
	Register(fd uintptr, interest Interest, userData uintptr) error

	// Modify replaces the interest set of a registered handle.
	Modify(fd uintptr, interest Interest, userData uintptr) error

	// Unregister removes a registered handle.
	Unregister(fd uintptr) error

	// Wait blocks up to timeoutMs (-1 = forever) and writes readiness
	// events into the output slice. Returns the number written; zero
	// means the timeout expired or the wait was interrupted.
	Wait(events []Event, timeoutMs int) (n int, err error)

	// Close cleans up resources (handle/epfd).
	Close() error
}

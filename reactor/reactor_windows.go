//go:build windows
// +build windows

// File: reactor/reactor_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows WSAPoll-based reactor implementation and factory. WSAPoll is
// loaded lazily from ws2_32.dll; x/sys/windows does not export it.

package reactor

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modws2_32   = windows.NewLazySystemDLL("ws2_32.dll")
	procWSAPoll = modws2_32.NewProc("WSAPoll")
)

const (
	pollrdnorm = 0x0100
	pollrdband = 0x0200
	pollwrnorm = 0x0010
	pollerr    = 0x0001
	pollhup    = 0x0002

	socketError = ^uintptr(0)
)

// wsaPollFd mirrors WSAPOLLFD.
type wsaPollFd struct {
	fd      windows.Handle
	events  int16
	revents int16
}

type registration struct {
	interest Interest
	userData uintptr
}

// windowsReactor polls a registration table with WSAPoll.
type windowsReactor struct {
	mu   sync.Mutex
	regs map[windows.Handle]registration
}

// NewReactor constructs a new platform-specific EventReactor for Windows.
func NewReactor() (EventReactor, error) {
	return &windowsReactor{regs: make(map[windows.Handle]registration)}, nil
}

// Register adds a socket handle to the poll set.
func (r *windowsReactor) Register(fd uintptr, interest Interest, udata uintptr) error {
	h := windows.Handle(fd)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.regs[h]; ok {
		return fmt.Errorf("reactor: handle %v already registered", fd)
	}
	r.regs[h] = registration{interest: interest, userData: udata}
	return nil
}

// Modify replaces the interest set of a registered handle.
func (r *windowsReactor) Modify(fd uintptr, interest Interest, udata uintptr) error {
	h := windows.Handle(fd)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.regs[h]; !ok {
		return fmt.Errorf("reactor: handle %v is not registered", fd)
	}
	r.regs[h] = registration{interest: interest, userData: udata}
	return nil
}

// Unregister removes a handle from the poll set.
func (r *windowsReactor) Unregister(fd uintptr) error {
	h := windows.Handle(fd)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.regs, h)
	return nil
}

// Wait polls all registered handles and fills the output slice.
func (r *windowsReactor) Wait(events []Event, timeoutMs int) (int, error) {
	r.mu.Lock()
	fds := make([]wsaPollFd, 0, len(r.regs))
	for h, reg := range r.regs {
		var ev int16
		if reg.interest&ReadReady != 0 {
			ev |= pollrdnorm | pollrdband
		}
		if reg.interest&WriteReady != 0 {
			ev |= pollwrnorm
		}
		fds = append(fds, wsaPollFd{fd: h, events: ev})
	}
	r.mu.Unlock()

	if len(fds) == 0 {
		if timeoutMs > 0 {
			windows.SleepEx(uint32(timeoutMs), false)
		}
		return 0, nil
	}

	r1, _, e1 := syscall.SyscallN(procWSAPoll.Addr(),
		uintptr(unsafe.Pointer(&fds[0])), uintptr(len(fds)), uintptr(int32(timeoutMs)))
	if r1 == socketError {
		if e1 != 0 {
			return 0, fmt.Errorf("wsapoll: %w", e1)
		}
		return 0, fmt.Errorf("wsapoll: %w", syscall.EINVAL)
	}
	if int32(r1) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	n := 0
	for _, fd := range fds {
		if n == len(events) || fd.revents == 0 {
			continue
		}
		var ready Interest
		if fd.revents&(pollrdnorm|pollrdband) != 0 {
			ready |= ReadReady
		}
		if fd.revents&pollwrnorm != 0 {
			ready |= WriteReady
		}
		if fd.revents&(pollerr|pollhup) != 0 {
			ready |= ErrorReady
		}
		events[n] = Event{
			Fd:       uintptr(fd.fd),
			Ready:    ready,
			UserData: r.regs[fd.fd].userData,
		}
		n++
	}
	r.mu.Unlock()
	return n, nil
}

// Close drops all registrations; WSAPoll holds no kernel object.
func (r *windowsReactor) Close() error {
	r.mu.Lock()
	r.regs = make(map[windows.Handle]registration)
	r.mu.Unlock()
	return nil
}

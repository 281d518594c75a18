//go:build windows
// +build windows

// File: sock/zsyscall_windows.go
// Author: momentics <momentics@gmail.com>
//
// Thin ws2_32 bindings for the few Winsock entry points x/sys/windows
// does not export: accept, ioctlsocket and WSAPoll.

package sock

import (
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modws2_32       = windows.NewLazySystemDLL("ws2_32.dll")
	procaccept      = modws2_32.NewProc("accept")
	procioctlsocket = modws2_32.NewProc("ioctlsocket")
	procWSAPoll     = modws2_32.NewProc("WSAPoll")
)

const (
	fionbio = 0x8004667e

	// WSAPOLLFD event bits per winsock2.h.
	pollrdnorm = 0x0100
	pollrdband = 0x0200
	pollwrnorm = 0x0010
	pollIn     = pollrdnorm | pollrdband
	pollOut    = pollwrnorm

	socketError = ^uintptr(0)
)

// wsaPollFd mirrors WSAPOLLFD.
type wsaPollFd struct {
	fd      windows.Handle
	events  int16
	revents int16
}

func acceptSocket(h sysHandle) (sysHandle, error) {
	ensureWinsock()
	r1, _, e1 := syscall.SyscallN(procaccept.Addr(), uintptr(h), 0, 0)
	nh := windows.Handle(r1)
	if nh == windows.InvalidHandle {
		if e1 != 0 {
			return windows.InvalidHandle, e1
		}
		return windows.InvalidHandle, syscall.EINVAL
	}
	return nh, nil
}

func ioctlNonblock(h sysHandle, nb bool) error {
	var mode uint32
	if nb {
		mode = 1
	}
	r1, _, e1 := syscall.SyscallN(procioctlsocket.Addr(),
		uintptr(h), uintptr(fionbio), uintptr(unsafe.Pointer(&mode)))
	if int32(r1) != 0 {
		if e1 != 0 {
			return e1
		}
		return syscall.EINVAL
	}
	return nil
}

// sysPollWait blocks until the handle is readable (or writable), up to
// timeoutMs (-1 = forever). Returns false on expiry. A failed
// non-blocking connect is reported through revents error bits, which
// WSAPoll folds into readiness; the caller distinguishes via SO_ERROR.
func sysPollWait(h sysHandle, write bool, timeoutMs int) (bool, error) {
	events := int16(pollIn)
	if write {
		events = pollOut
	}
	var deadline time.Time
	if timeoutMs >= 0 {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}
	for {
		remaining := -1
		if timeoutMs >= 0 {
			remaining = int(time.Until(deadline).Milliseconds())
			if remaining < 0 {
				remaining = 0
			}
		}
		fds := [1]wsaPollFd{{fd: h, events: events}}
		r1, _, e1 := syscall.SyscallN(procWSAPoll.Addr(),
			uintptr(unsafe.Pointer(&fds[0])), 1, uintptr(int32(remaining)))
		if r1 == socketError {
			if e1 == syscall.Errno(windows.WSAEINTR) {
				continue
			}
			if e1 != 0 {
				return false, e1
			}
			return false, syscall.EINVAL
		}
		return int32(r1) > 0, nil
	}
}

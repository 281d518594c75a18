//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based reactor implementation and factory.

package reactor

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// linuxReactor is an epoll-based event reactor. Level-triggered:
// interest stays armed until modified or unregistered.
type linuxReactor struct {
	epfd int

	mu       sync.Mutex
	userData map[uintptr]uintptr
}

// NewReactor constructs a new platform-specific EventReactor for Linux.
func NewReactor() (EventReactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &linuxReactor{epfd: epfd, userData: make(map[uintptr]uintptr)}, nil
}

func epollEvents(interest Interest) uint32 {
	var ev uint32
	if interest&ReadReady != 0 {
		ev |= unix.EPOLLIN
	}
	if interest&WriteReady != 0 {
		ev |= unix.EPOLLOUT
	}
	return ev
}

// Register adds the file descriptor to epoll.
func (r *linuxReactor) Register(fd uintptr, interest Interest, udata uintptr) error {
	event := &unix.EpollEvent{Events: epollEvents(interest), Fd: int32(fd)}
	if err := r.ctl(unix.EPOLL_CTL_ADD, fd, event); err != nil {
		return fmt.Errorf("epoll ctl add: %w", err)
	}
	r.mu.Lock()
	r.userData[fd] = udata
	r.mu.Unlock()
	return nil
}

// Modify replaces the interest set.
func (r *linuxReactor) Modify(fd uintptr, interest Interest, udata uintptr) error {
	event := &unix.EpollEvent{Events: epollEvents(interest), Fd: int32(fd)}
	if err := r.ctl(unix.EPOLL_CTL_MOD, fd, event); err != nil {
		return fmt.Errorf("epoll ctl mod: %w", err)
	}
	r.mu.Lock()
	r.userData[fd] = udata
	r.mu.Unlock()
	return nil
}

// Unregister removes the file descriptor from epoll.
func (r *linuxReactor) Unregister(fd uintptr) error {
	if err := r.ctl(unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	r.mu.Lock()
	delete(r.userData, fd)
	r.mu.Unlock()
	return nil
}

func (r *linuxReactor) ctl(op int, fd uintptr, event *unix.EpollEvent) error {
	return unix.EpollCtl(r.epfd, op, int(fd), event)
}

// Wait blocks for epoll events and fills the output slice. An EINTR
// wakeup is normal and reported as zero events.
func (r *linuxReactor) Wait(events []Event, timeoutMs int) (int, error) {
	rawEvents := make([]unix.EpollEvent, len(events))
	n, err := unix.EpollWait(r.epfd, rawEvents, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("epoll wait: %w", err)
	}

	r.mu.Lock()
	for i := 0; i < n; i++ {
		raw := rawEvents[i]
		var ready Interest
		if raw.Events&unix.EPOLLIN != 0 {
			ready |= ReadReady
		}
		if raw.Events&unix.EPOLLOUT != 0 {
			ready |= WriteReady
		}
		if raw.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			ready |= ErrorReady
		}
		events[i] = Event{
			Fd:       uintptr(raw.Fd),
			Ready:    ready,
			UserData: r.userData[uintptr(raw.Fd)],
		}
	}
	r.mu.Unlock()
	return n, nil
}

// Close releases the epoll file descriptor.
func (r *linuxReactor) Close() error {
	return unix.Close(r.epfd)
}

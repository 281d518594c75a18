//go:build linux
// +build linux

// File: sock/sock_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux syscall surface. The handle is a small-integer file descriptor
// and the non-blocking flag is controlled via fcntl (unix.SetNonblock).

package sock

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-io/sockaddr"
)

type sysHandle = int

func familySys(f sockaddr.Family) int {
	switch f {
	case sockaddr.FamilyINET:
		return unix.AF_INET
	case sockaddr.FamilyINET6:
		return unix.AF_INET6
	default:
		return unix.AF_UNSPEC
	}
}

func kindSys(k sockaddr.SockKind) int {
	if k == sockaddr.KindDatagram {
		return unix.SOCK_DGRAM
	}
	return unix.SOCK_STREAM
}

func sysSocket(f sockaddr.Family, k sockaddr.SockKind, p sockaddr.Protocol) (sysHandle, error) {
	fd, err := unix.Socket(familySys(f), kindSys(k)|unix.SOCK_CLOEXEC, int(p))
	if err != nil {
		return -1, err
	}
	return fd, nil
}

func sysClose(h sysHandle) error { return unix.Close(h) }

func sysBind(h sysHandle, ci sockaddr.ConnectionInfo) error {
	sa, err := toSockaddr(ci)
	if err != nil {
		return err
	}
	return unix.Bind(h, sa)
}

func sysConnect(h sysHandle, ci sockaddr.ConnectionInfo) error {
	sa, err := toSockaddr(ci)
	if err != nil {
		return err
	}
	return unix.Connect(h, sa)
}

func sysListen(h sysHandle, backlog int) error { return unix.Listen(h, backlog) }

func sysAccept(h sysHandle) (sysHandle, error) {
	nfd, _, err := unix.Accept(h)
	if err != nil {
		return -1, err
	}
	unix.CloseOnExec(nfd)
	return nfd, nil
}

func sysRecv(h sysHandle, p []byte) (int, error) {
	n, err := unix.Read(h, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func sysSend(h sysHandle, p []byte) (int, error) {
	n, err := unix.Write(h, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func sysRecvfrom(h sysHandle, p []byte, kind sockaddr.SockKind) (int, sockaddr.ConnectionInfo, error) {
	n, sa, err := unix.Recvfrom(h, p, 0)
	if n < 0 {
		n = 0
	}
	if err != nil {
		return n, nil, err
	}
	return n, fromSockaddr(sa, kind), nil
}

// sysSendto is datagram-only, so success means the whole payload was
// queued as one datagram.
func sysSendto(h sysHandle, p []byte, ci sockaddr.ConnectionInfo) (int, error) {
	sa, err := toSockaddr(ci)
	if err != nil {
		return 0, err
	}
	if err := unix.Sendto(h, p, 0, sa); err != nil {
		return 0, err
	}
	return len(p), nil
}

func sysShutdown(h sysHandle, how ShutdownHow) error {
	var sysHow int
	switch how {
	case ShutdownRead:
		sysHow = unix.SHUT_RD
	case ShutdownWrite:
		sysHow = unix.SHUT_WR
	default:
		sysHow = unix.SHUT_RDWR
	}
	return unix.Shutdown(h, sysHow)
}

func sysSetNonblock(h sysHandle, nb bool) error { return unix.SetNonblock(h, nb) }

func sysSetsockoptInt(h sysHandle, level, opt, value int) error {
	return unix.SetsockoptInt(h, level, opt, value)
}

func sysGetsockoptInt(h sysHandle, level, opt int) (int, error) {
	return unix.GetsockoptInt(h, level, opt)
}

func sysSOError(h sysHandle) (int, error) {
	return unix.GetsockoptInt(h, unix.SOL_SOCKET, unix.SO_ERROR)
}

// sysPollWait blocks until the handle is readable (or writable), up to
// timeoutMs (-1 = forever). EINTR restarts the poll with the remaining
// time. Returns false on expiry.
func sysPollWait(h sysHandle, write bool, timeoutMs int) (bool, error) {
	events := int16(unix.POLLIN)
	if write {
		events = unix.POLLOUT
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
		fds := []unix.PollFd{{Fd: int32(h), Events: events}}
		n, err := unix.Poll(fds, remaining)
		if err != nil {
			if isEINTR(err) {
				continue
			}
			return false, err
		}
		return n > 0, nil
	}
}

func sysLocalInfo(h sysHandle, kind sockaddr.SockKind) (sockaddr.ConnectionInfo, error) {
	sa, err := unix.Getsockname(h)
	if err != nil {
		return nil, err
	}
	return fromSockaddr(sa, kind), nil
}

func sysRemoteInfo(h sysHandle, kind sockaddr.SockKind) (sockaddr.ConnectionInfo, error) {
	sa, err := unix.Getpeername(h)
	if err != nil {
		return nil, err
	}
	return fromSockaddr(sa, kind), nil
}

func toSockaddr(ci sockaddr.ConnectionInfo) (unix.Sockaddr, error) {
	ip := ci.IP()
	switch len(ip) {
	case 4:
		sa := &unix.SockaddrInet4{Port: int(ci.Port())}
		copy(sa.Addr[:], ip)
		return sa, nil
	case 16:
		sa := &unix.SockaddrInet6{Port: int(ci.Port())}
		copy(sa.Addr[:], ip)
		return sa, nil
	default:
		return nil, fmt.Errorf("sock: unsupported address length %d", len(ip))
	}
}

// fromSockaddr maps a raw sockaddr back into the typed model. Unknown
// families yield nil, mirroring the resolver's drop-don't-fail rule.
func fromSockaddr(sa unix.Sockaddr, kind sockaddr.SockKind) sockaddr.ConnectionInfo {
	var ip []byte
	var port uint16
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		ip = a.Addr[:]
		port = uint16(a.Port)
	case *unix.SockaddrInet6:
		ip = a.Addr[:]
		port = uint16(a.Port)
	default:
		return nil
	}
	if kind == sockaddr.KindDatagram {
		ci, err := sockaddr.NewUDPConnectionInfo(ip, port)
		if err != nil {
			return nil
		}
		return ci
	}
	ci, err := sockaddr.NewTCPConnectionInfo(ip, port)
	if err != nil {
		return nil
	}
	return ci
}

func isEINTR(err error) bool { return errors.Is(err, unix.EINTR) }

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

func isInProgress(err error) bool { return errors.Is(err, unix.EINPROGRESS) }

func isClosedErrno(e syscall.Errno) bool { return e == unix.EBADF }

func isPeerClosedErrno(e syscall.Errno) bool {
	return e == unix.EPIPE || e == unix.ECONNRESET
}

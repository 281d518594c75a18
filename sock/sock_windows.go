//go:build windows
// +build windows

// File: sock/sock_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows Winsock surface. The handle is an opaque SOCKET and the
// non-blocking flag is controlled via ioctlsocket(FIONBIO). The exposed
// contract is byte-identical to the Linux file, modulo timing.

package sock

import (
	"errors"
	"fmt"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/momentics/hioload-io/sockaddr"
)

type sysHandle = windows.Handle

var winsockOnce sync.Once

// ensureWinsock performs the process-wide WSAStartup. Winsock version
// 2.2; lifetime is tied to the process, matching the resolver policy.
func ensureWinsock() {
	winsockOnce.Do(func() {
		var d windows.WSAData
		_ = windows.WSAStartup(uint32(0x202), &d)
	})
}

func familySys(f sockaddr.Family) int {
	switch f {
	case sockaddr.FamilyINET:
		return windows.AF_INET
	case sockaddr.FamilyINET6:
		return windows.AF_INET6
	default:
		return windows.AF_UNSPEC
	}
}

func kindSys(k sockaddr.SockKind) int {
	if k == sockaddr.KindDatagram {
		return windows.SOCK_DGRAM
	}
	return windows.SOCK_STREAM
}

func sysSocket(f sockaddr.Family, k sockaddr.SockKind, p sockaddr.Protocol) (sysHandle, error) {
	ensureWinsock()
	h, err := windows.Socket(familySys(f), kindSys(k), int(p))
	if err != nil {
		return windows.InvalidHandle, err
	}
	return h, nil
}

func sysClose(h sysHandle) error { return windows.Closesocket(h) }

func sysBind(h sysHandle, ci sockaddr.ConnectionInfo) error {
	sa, err := toSockaddr(ci)
	if err != nil {
		return err
	}
	return windows.Bind(h, sa)
}

func sysConnect(h sysHandle, ci sockaddr.ConnectionInfo) error {
	sa, err := toSockaddr(ci)
	if err != nil {
		return err
	}
	return windows.Connect(h, sa)
}

func sysListen(h sysHandle, backlog int) error { return windows.Listen(h, backlog) }

func sysAccept(h sysHandle) (sysHandle, error) {
	return acceptSocket(h)
}

func sysRecv(h sysHandle, p []byte) (int, error) {
	var buf windows.WSABuf
	if len(p) > 0 {
		buf.Buf = &p[0]
	}
	buf.Len = uint32(len(p))
	var qty, flags uint32
	if err := windows.WSARecv(h, &buf, 1, &qty, &flags, nil, nil); err != nil {
		return 0, err
	}
	return int(qty), nil
}

func sysSend(h sysHandle, p []byte) (int, error) {
	var buf windows.WSABuf
	if len(p) > 0 {
		buf.Buf = &p[0]
	}
	buf.Len = uint32(len(p))
	var qty uint32
	if err := windows.WSASend(h, &buf, 1, &qty, 0, nil, nil); err != nil {
		return 0, err
	}
	return int(qty), nil
}

func sysRecvfrom(h sysHandle, p []byte, kind sockaddr.SockKind) (int, sockaddr.ConnectionInfo, error) {
	n, sa, err := windows.Recvfrom(h, p, 0)
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
	if err := windows.Sendto(h, p, 0, sa); err != nil {
		return 0, err
	}
	return len(p), nil
}

func sysShutdown(h sysHandle, how ShutdownHow) error {
	// SD_RECEIVE / SD_SEND / SD_BOTH per winsock2.h.
	var sysHow int
	switch how {
	case ShutdownRead:
		sysHow = 0
	case ShutdownWrite:
		sysHow = 1
	default:
		sysHow = 2
	}
	return windows.Shutdown(h, sysHow)
}

func sysSetNonblock(h sysHandle, nb bool) error { return ioctlNonblock(h, nb) }

func sysSetsockoptInt(h sysHandle, level, opt, value int) error {
	return windows.SetsockoptInt(h, level, opt, value)
}

func sysGetsockoptInt(h sysHandle, level, opt int) (int, error) {
	return windows.GetsockoptInt(h, level, opt)
}

func sysSOError(h sysHandle) (int, error) {
	return windows.GetsockoptInt(h, windows.SOL_SOCKET, windows.SO_ERROR)
}

func sysLocalInfo(h sysHandle, kind sockaddr.SockKind) (sockaddr.ConnectionInfo, error) {
	sa, err := windows.Getsockname(h)
	if err != nil {
		return nil, err
	}
	return fromSockaddr(sa, kind), nil
}

func sysRemoteInfo(h sysHandle, kind sockaddr.SockKind) (sockaddr.ConnectionInfo, error) {
	sa, err := windows.Getpeername(h)
	if err != nil {
		return nil, err
	}
	return fromSockaddr(sa, kind), nil
}

func toSockaddr(ci sockaddr.ConnectionInfo) (windows.Sockaddr, error) {
	ip := ci.IP()
	switch len(ip) {
	case 4:
		sa := &windows.SockaddrInet4{Port: int(ci.Port())}
		copy(sa.Addr[:], ip)
		return sa, nil
	case 16:
		sa := &windows.SockaddrInet6{Port: int(ci.Port())}
		copy(sa.Addr[:], ip)
		return sa, nil
	default:
		return nil, fmt.Errorf("sock: unsupported address length %d", len(ip))
	}
}

// fromSockaddr maps a raw sockaddr back into the typed model. Unknown
// families yield nil, mirroring the resolver's drop-don't-fail rule.
func fromSockaddr(sa windows.Sockaddr, kind sockaddr.SockKind) sockaddr.ConnectionInfo {
	var ip []byte
	var port uint16
	switch a := sa.(type) {
	case *windows.SockaddrInet4:
		ip = a.Addr[:]
		port = uint16(a.Port)
	case *windows.SockaddrInet6:
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

func isEINTR(err error) bool {
	return errors.Is(err, windows.WSAEINTR) || errors.Is(err, syscall.EINTR)
}

func isWouldBlock(err error) bool {
	return errors.Is(err, windows.WSAEWOULDBLOCK)
}

// Winsock reports an in-flight non-blocking connect as WSAEWOULDBLOCK
// rather than EINPROGRESS.
func isInProgress(err error) bool {
	return errors.Is(err, windows.WSAEWOULDBLOCK) || errors.Is(err, windows.WSAEINPROGRESS)
}

func isClosedErrno(e syscall.Errno) bool {
	return e == windows.WSAENOTSOCK || e == windows.WSAEBADF
}

func isPeerClosedErrno(e syscall.Errno) bool {
	return e == windows.WSAECONNRESET || e == windows.WSAECONNABORTED || e == windows.WSAESHUTDOWN
}

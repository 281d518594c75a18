//go:build !linux && !windows
// +build !linux,!windows

// File: sock/sock_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub syscall surface for unsupported platforms.

package sock

import (
	"syscall"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/sockaddr"
)

type sysHandle = int

var (
	TCPNoDelay = BoolOption{Name: "TCP_NODELAY", Level: 6, Opt: 1}
	ReuseAddr  = BoolOption{Name: "SO_REUSEADDR", Level: 1, Opt: 2}
	KeepAlive  = BoolOption{Name: "SO_KEEPALIVE", Level: 1, Opt: 9}
	RecvBuffer = Uint64Option{Name: "SO_RCVBUF", Level: 1, Opt: 8}
	SendBuffer = Uint64Option{Name: "SO_SNDBUF", Level: 1, Opt: 7}
)

func sysSocket(sockaddr.Family, sockaddr.SockKind, sockaddr.Protocol) (sysHandle, error) {
	return -1, api.ErrNotSupported
}

func sysClose(sysHandle) error                              { return api.ErrNotSupported }
func sysBind(sysHandle, sockaddr.ConnectionInfo) error      { return api.ErrNotSupported }
func sysConnect(sysHandle, sockaddr.ConnectionInfo) error   { return api.ErrNotSupported }
func sysListen(sysHandle, int) error                        { return api.ErrNotSupported }
func sysAccept(sysHandle) (sysHandle, error)                { return -1, api.ErrNotSupported }
func sysRecv(sysHandle, []byte) (int, error)                { return 0, api.ErrNotSupported }
func sysSend(sysHandle, []byte) (int, error)                { return 0, api.ErrNotSupported }
func sysShutdown(sysHandle, ShutdownHow) error              { return api.ErrNotSupported }
func sysSetNonblock(sysHandle, bool) error                  { return api.ErrNotSupported }
func sysSetsockoptInt(sysHandle, int, int, int) error       { return api.ErrNotSupported }
func sysGetsockoptInt(sysHandle, int, int) (int, error)     { return 0, api.ErrNotSupported }
func sysSOError(sysHandle) (int, error)                     { return 0, api.ErrNotSupported }
func sysPollWait(sysHandle, bool, int) (bool, error)        { return false, api.ErrNotSupported }

func sysRecvfrom(sysHandle, []byte, sockaddr.SockKind) (int, sockaddr.ConnectionInfo, error) {
	return 0, nil, api.ErrNotSupported
}

func sysSendto(sysHandle, []byte, sockaddr.ConnectionInfo) (int, error) {
	return 0, api.ErrNotSupported
}

func sysLocalInfo(sysHandle, sockaddr.SockKind) (sockaddr.ConnectionInfo, error) {
	return nil, api.ErrNotSupported
}

func sysRemoteInfo(sysHandle, sockaddr.SockKind) (sockaddr.ConnectionInfo, error) {
	return nil, api.ErrNotSupported
}

func isEINTR(error) bool                 { return false }
func isWouldBlock(error) bool            { return false }
func isInProgress(error) bool            { return false }
func isClosedErrno(syscall.Errno) bool   { return false }
func isPeerClosedErrno(syscall.Errno) bool { return false }

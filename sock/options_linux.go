//go:build linux
// +build linux

// File: sock/options_linux.go
// Author: momentics <momentics@gmail.com>
//
// Option constants with the numeric (level, opt) pairs from the Linux
// socket headers.

package sock

import "golang.org/x/sys/unix"

var (
	// TCPNoDelay disables Nagle send coalescing.
	TCPNoDelay = BoolOption{Name: "TCP_NODELAY", Level: unix.IPPROTO_TCP, Opt: unix.TCP_NODELAY}

	// TCPQuickAck forces immediate ACKs instead of delayed ones.
	// Linux-only.
	TCPQuickAck = BoolOption{Name: "TCP_QUICKACK", Level: unix.IPPROTO_TCP, Opt: unix.TCP_QUICKACK}

	// ReuseAddr allows rebinding a recently used local address.
	ReuseAddr = BoolOption{Name: "SO_REUSEADDR", Level: unix.SOL_SOCKET, Opt: unix.SO_REUSEADDR}

	// KeepAlive enables periodic connection liveness probes.
	KeepAlive = BoolOption{Name: "SO_KEEPALIVE", Level: unix.SOL_SOCKET, Opt: unix.SO_KEEPALIVE}

	// RecvBuffer sizes the kernel receive buffer.
	RecvBuffer = Uint64Option{Name: "SO_RCVBUF", Level: unix.SOL_SOCKET, Opt: unix.SO_RCVBUF}

	// SendBuffer sizes the kernel send buffer.
	SendBuffer = Uint64Option{Name: "SO_SNDBUF", Level: unix.SOL_SOCKET, Opt: unix.SO_SNDBUF}
)

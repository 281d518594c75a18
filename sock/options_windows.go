//go:build windows
// +build windows

// File: sock/options_windows.go
// Author: momentics <momentics@gmail.com>
//
// Option constants with the numeric (level, opt) pairs from the Winsock
// headers. TCP_QUICKACK has no Winsock equivalent and is deliberately
// absent here.

package sock

import "golang.org/x/sys/windows"

var (
	// TCPNoDelay disables Nagle send coalescing.
	TCPNoDelay = BoolOption{Name: "TCP_NODELAY", Level: windows.IPPROTO_TCP, Opt: windows.TCP_NODELAY}

	// ReuseAddr allows rebinding a recently used local address.
	ReuseAddr = BoolOption{Name: "SO_REUSEADDR", Level: windows.SOL_SOCKET, Opt: windows.SO_REUSEADDR}

	// KeepAlive enables periodic connection liveness probes.
	KeepAlive = BoolOption{Name: "SO_KEEPALIVE", Level: windows.SOL_SOCKET, Opt: windows.SO_KEEPALIVE}

	// RecvBuffer sizes the kernel receive buffer.
	RecvBuffer = Uint64Option{Name: "SO_RCVBUF", Level: windows.SOL_SOCKET, Opt: windows.SO_RCVBUF}

	// SendBuffer sizes the kernel send buffer.
	SendBuffer = Uint64Option{Name: "SO_SNDBUF", Level: windows.SOL_SOCKET, Opt: windows.SO_SNDBUF}
)

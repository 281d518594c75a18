// File: sockaddr/sockaddr.go
// Author: momentics <momentics@gmail.com>
//
// Typed address model: address families, socket kinds, protocol
// numbers, and the immutable per-protocol connection tuples produced by
// resolution.

package sockaddr

import (
	"bytes"
	"fmt"
	"net"
)

// Family is an address family. Numeric platform values (AF_*) are
// assigned in the sock package's platform files; this enum stays
// platform-neutral.
type Family int

const (
	FamilyUnspec Family = iota
	FamilyINET
	FamilyINET6
)

func (f Family) String() string {
	switch f {
	case FamilyINET:
		return "inet"
	case FamilyINET6:
		return "inet6"
	default:
		return "unspec"
	}
}

// SockKind is the socket communication style.
type SockKind int

const (
	KindUnknown SockKind = iota
	KindStream
	KindDatagram
)

func (k SockKind) String() string {
	switch k {
	case KindStream:
		return "stream"
	case KindDatagram:
		return "datagram"
	default:
		return "unknown"
	}
}

// Protocol is an IANA protocol number. These values are identical on
// every supported platform.
type Protocol int

const (
	ProtoUnspec Protocol = 0
	ProtoTCP    Protocol = 6
	ProtoUDP    Protocol = 17
)

func (p Protocol) String() string {
	switch p {
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	default:
		return "unspec"
	}
}

// ConnectionInfo is one resolved endpoint for one concrete protocol.
// Implementations are immutable once constructed.
type ConnectionInfo interface {
	// IP returns the raw network-order address bytes (length 4 or 16).
	// The returned slice is a copy.
	IP() []byte

	Port() uint16
	Family() Family
	Kind() SockKind
	Protocol() Protocol

	fmt.Stringer
}

// endpoint carries the fields shared by the TCP and UDP tuples.
type endpoint struct {
	ip   []byte
	port uint16
}

func newEndpoint(ip []byte, port uint16) (endpoint, error) {
	if len(ip) != net.IPv4len && len(ip) != net.IPv6len {
		return endpoint{}, fmt.Errorf("sockaddr: address must be 4 or 16 bytes, got %d", len(ip))
	}
	cp := make([]byte, len(ip))
	copy(cp, ip)
	return endpoint{ip: cp, port: port}, nil
}

func (e endpoint) IP() []byte {
	cp := make([]byte, len(e.ip))
	copy(cp, e.ip)
	return cp
}

func (e endpoint) Port() uint16 { return e.port }

func (e endpoint) Family() Family {
	if len(e.ip) == net.IPv4len {
		return FamilyINET
	}
	return FamilyINET6
}

func (e endpoint) hostPort() string {
	return net.JoinHostPort(net.IP(e.ip).String(), fmt.Sprintf("%d", e.port))
}

func (e endpoint) equal(o endpoint) bool {
	return e.port == o.port && bytes.Equal(e.ip, o.ip)
}

// TCPConnectionInfo is a stream endpoint.
type TCPConnectionInfo struct {
	endpoint
}

// NewTCPConnectionInfo builds a TCP endpoint from raw network-order
// address bytes.
func NewTCPConnectionInfo(ip []byte, port uint16) (TCPConnectionInfo, error) {
	ep, err := newEndpoint(ip, port)
	if err != nil {
		return TCPConnectionInfo{}, err
	}
	return TCPConnectionInfo{endpoint: ep}, nil
}

func (TCPConnectionInfo) Kind() SockKind     { return KindStream }
func (TCPConnectionInfo) Protocol() Protocol { return ProtoTCP }

func (i TCPConnectionInfo) String() string { return "tcp://" + i.hostPort() }

// UDPConnectionInfo is a datagram endpoint.
type UDPConnectionInfo struct {
	endpoint
}

// NewUDPConnectionInfo builds a UDP endpoint from raw network-order
// address bytes.
func NewUDPConnectionInfo(ip []byte, port uint16) (UDPConnectionInfo, error) {
	ep, err := newEndpoint(ip, port)
	if err != nil {
		return UDPConnectionInfo{}, err
	}
	return UDPConnectionInfo{endpoint: ep}, nil
}

func (UDPConnectionInfo) Kind() SockKind     { return KindDatagram }
func (UDPConnectionInfo) Protocol() Protocol { return ProtoUDP }

func (i UDPConnectionInfo) String() string { return "udp://" + i.hostPort() }

// Same reports whether two infos denote the same endpoint: identical
// protocol, address bytes and port.
func Same(a, b ConnectionInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Protocol() != b.Protocol() || a.Port() != b.Port() {
		return false
	}
	return bytes.Equal(a.IP(), b.IP())
}

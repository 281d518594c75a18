// Package resolver
// Author: momentics <momentics@gmail.com>
//
// Address resolution: a getaddrinfo-style boundary producing typed
// ConnectionInfo lists. One process-wide default resolver exists for
// the lifetime of the process; callers may substitute any Resolver per
// call for testability or custom policy.
//
// The filtering discipline is drop-don't-fail: entries whose kind or
// family cannot be mapped are skipped silently, and a batch never fails
// because of one bad entry. A resolver returning partial information is
// normal; the aggregate result is still meaningful.
package resolver

import (
	"context"
	"net"
	"strconv"

	"github.com/momentics/hioload-io/sockaddr"
)

// Hints narrows a GetAddrInfo query, mirroring struct addrinfo hints.
// Zero values mean unspecified.
type Hints struct {
	Family   sockaddr.Family
	Kind     sockaddr.SockKind
	Protocol sockaddr.Protocol
	Flags    int
}

// Flag bits for Hints.Flags.
const (
	// FlagPassive marks the query as being for a local bind: an empty
	// host resolves to the wildcard addresses. Without it an empty host
	// resolves to loopback, matching getaddrinfo's AI_PASSIVE split.
	FlagPassive = 1 << iota
)

// Resolver is the one boundary this runtime has into a name-resolution
// facility. Output is advisory: entries may be dropped and ordering is
// resolver-determined.
type Resolver interface {
	GetAddrInfo(ctx context.Context, host, service string, hints Hints) ([]sockaddr.ConnectionInfo, error)
}

// global is the process-wide default. Stateless per call, safe for
// concurrent use, no teardown: its lifecycle is the process lifetime.
var global Resolver = &SystemResolver{}

// Global returns the process-wide default resolver.
func Global() Resolver { return global }

// SystemResolver resolves through the operating system's facility via
// net.Resolver (the getaddrinfo/cgo boundary). The zero value uses
// net.DefaultResolver; R substitutes an alternate net.Resolver, which
// tests use to point at a mock DNS server.
type SystemResolver struct {
	R *net.Resolver
}

// GetAddrInfo implements Resolver.
func (r *SystemResolver) GetAddrInfo(ctx context.Context, host, service string, hints Hints) ([]sockaddr.ConnectionInfo, error) {
	res := r.R
	if res == nil {
		res = net.DefaultResolver
	}

	port, err := lookupService(ctx, res, service, hints)
	if err != nil {
		return nil, err
	}

	ips, err := lookupHost(ctx, res, host, hints)
	if err != nil {
		return nil, err
	}

	var infos []sockaddr.ConnectionInfo
	for _, ip := range ips {
		infos = append(infos, buildInfos(ip, port, hints)...)
	}
	return infos, nil
}

func lookupService(ctx context.Context, res *net.Resolver, service string, hints Hints) (uint16, error) {
	if service == "" {
		return 0, nil
	}
	if n, err := strconv.ParseUint(service, 10, 16); err == nil {
		return uint16(n), nil
	}
	network := "tcp"
	if hints.Kind == sockaddr.KindDatagram || hints.Protocol == sockaddr.ProtoUDP {
		network = "udp"
	}
	p, err := res.LookupPort(ctx, network, service)
	if err != nil {
		return 0, err
	}
	return uint16(p), nil
}

func lookupHost(ctx context.Context, res *net.Resolver, host string, hints Hints) ([]net.IP, error) {
	if host == "" {
		if hints.Flags&FlagPassive != 0 {
			return []net.IP{net.IPv4zero, net.IPv6unspecified}, nil
		}
		return []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}, nil
	}
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}
	addrs, err := res.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		if a.IP == nil {
			continue
		}
		ips = append(ips, a.IP)
	}
	return ips, nil
}

// buildInfos maps one raw address into zero or more typed entries.
// Stream kinds become TCP tuples, datagram kinds UDP tuples; an
// unspecified kind produces both, and anything else is dropped.
func buildInfos(ip net.IP, port uint16, hints Hints) []sockaddr.ConnectionInfo {
	raw := ip.To4()
	if raw == nil {
		raw = ip.To16()
	}
	if raw == nil {
		return nil
	}
	if hints.Family == sockaddr.FamilyINET && len(raw) != net.IPv4len {
		return nil
	}
	if hints.Family == sockaddr.FamilyINET6 && len(raw) != net.IPv6len {
		return nil
	}

	wantStream := hints.Kind == sockaddr.KindStream || hints.Kind == sockaddr.KindUnknown
	wantDgram := hints.Kind == sockaddr.KindDatagram || hints.Kind == sockaddr.KindUnknown
	if hints.Protocol == sockaddr.ProtoTCP {
		wantDgram = false
	}
	if hints.Protocol == sockaddr.ProtoUDP {
		wantStream = false
	}

	var infos []sockaddr.ConnectionInfo
	if wantStream {
		if ci, err := sockaddr.NewTCPConnectionInfo(raw, port); err == nil {
			infos = append(infos, ci)
		}
	}
	if wantDgram {
		if ci, err := sockaddr.NewUDPConnectionInfo(raw, port); err == nil {
			infos = append(infos, ci)
		}
	}
	return infos
}

// ResolveTCP resolves host:port for stream use and wraps the filtered
// set into a SocketAddress. The set holds only TCP entries.
func ResolveTCP(ctx context.Context, host string, port uint16, r Resolver) (sockaddr.SocketAddress, error) {
	return resolveProto(ctx, host, port, r, sockaddr.KindStream, sockaddr.ProtoTCP)
}

// ResolveUDP resolves host:port for datagram use. The set holds only
// UDP entries.
func ResolveUDP(ctx context.Context, host string, port uint16, r Resolver) (sockaddr.SocketAddress, error) {
	return resolveProto(ctx, host, port, r, sockaddr.KindDatagram, sockaddr.ProtoUDP)
}

func resolveProto(ctx context.Context, host string, port uint16, r Resolver, kind sockaddr.SockKind, proto sockaddr.Protocol) (sockaddr.SocketAddress, error) {
	if r == nil {
		r = Global()
	}
	infos, err := r.GetAddrInfo(ctx, host, strconv.Itoa(int(port)), Hints{
		Family:   sockaddr.FamilyUnspec,
		Kind:     kind,
		Protocol: proto,
	})
	if err != nil {
		return sockaddr.SocketAddress{}, err
	}
	kept := infos[:0]
	for _, ci := range infos {
		if ci != nil && ci.Protocol() == proto {
			kept = append(kept, ci)
		}
	}
	return sockaddr.NewSocketAddress(host, kept), nil
}

// File: resolver/dns.go
// Author: momentics <momentics@gmail.com>
//
// DNSResolver resolves by speaking DNS directly to a configured server,
// bypassing the operating system's facility. It demonstrates the
// pluggable-resolver seam: any call site taking a Resolver accepts it
// in place of the system default.

package resolver

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/miekg/dns"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/sockaddr"
)

// DNSResolver queries A/AAAA records from one DNS server.
type DNSResolver struct {
	// Server is the "host:port" of the DNS server, e.g. "1.1.1.1:53".
	Server string

	// Client overrides the default dns.Client (transport, timeouts).
	Client *dns.Client
}

// GetAddrInfo implements Resolver. Services must be numeric: this
// resolver has no services database.
func (d *DNSResolver) GetAddrInfo(ctx context.Context, host, service string, hints Hints) ([]sockaddr.ConnectionInfo, error) {
	var port uint16
	if service != "" {
		n, err := strconv.ParseUint(service, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("dns resolver: non-numeric service %q: %w", service, api.ErrNotSupported)
		}
		port = uint16(n)
	}

	if ip := net.ParseIP(host); ip != nil {
		return buildInfos(ip, port, hints), nil
	}

	client := d.Client
	if client == nil {
		client = new(dns.Client)
	}

	var qtypes []uint16
	if hints.Family != sockaddr.FamilyINET6 {
		qtypes = append(qtypes, dns.TypeA)
	}
	if hints.Family != sockaddr.FamilyINET {
		qtypes = append(qtypes, dns.TypeAAAA)
	}

	var (
		infos   []sockaddr.ConnectionInfo
		lastErr error
	)
	for _, qt := range qtypes {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(host), qt)
		in, _, err := client.ExchangeContext(ctx, msg, d.Server)
		if err != nil {
			// One failed query does not fail the batch; the other
			// record type may still resolve.
			lastErr = err
			continue
		}
		for _, rr := range in.Answer {
			switch a := rr.(type) {
			case *dns.A:
				infos = append(infos, buildInfos(a.A, port, hints)...)
			case *dns.AAAA:
				infos = append(infos, buildInfos(a.AAAA, port, hints)...)
			}
		}
	}
	if len(infos) == 0 && lastErr != nil {
		return nil, fmt.Errorf("dns resolver: %s: %w", host, lastErr)
	}
	return infos, nil
}
